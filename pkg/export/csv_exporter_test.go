package export_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshawa-scheduler/core/pkg/export"
)

func TestScheduleDatasetJoinsCRNTuples(t *testing.T) {
	schedules := []map[string][]string{
		{"BIOL1000U": {"44746"}, "CRMN1000U": {"42600", "42601"}},
	}
	data := export.ScheduleDataset([]string{"BIOL1000U", "CRMN1000U"}, schedules)

	require.Equal(t, "42600+42601", data.Rows[0]["CRMN1000U"])
}

func TestCSVExporterRendersHeaderAndRows(t *testing.T) {
	e := export.NewCSVExporter()
	out, err := e.Render(export.Dataset{
		Headers: []string{"BIOL1000U"},
		Rows:    []map[string]string{{"BIOL1000U": "44746"}},
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "BIOL1000U"))
	require.Contains(t, string(out), "44746")
}

func TestCSVExporterRejectsEmptyHeaders(t *testing.T) {
	e := export.NewCSVExporter()
	_, err := e.Render(export.Dataset{})
	require.Error(t, err)
}
