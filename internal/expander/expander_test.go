package expander_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshawa-scheduler/core/internal/expander"
	"github.com/oshawa-scheduler/core/internal/solver"
	"github.com/oshawa-scheduler/core/internal/timebitmap"
)

func TestExpandCartesianProductAcrossCourses(t *testing.T) {
	morning, err := timebitmap.FromSpan("0810", "0930", "monday")
	require.NoError(t, err)
	afternoon, err := timebitmap.FromSpan("1240", "1400", "monday")
	require.NoError(t, err)

	idx := expander.NewBitmapIndex()
	idx.Add("BIOL1000U", morning, []string{"44746"})
	idx.Add("CRMN1000U", afternoon, []string{"42600", "42601"})
	idx.Add("CRMN1000U", afternoon, []string{"42600", "42602"})

	assignments := []solver.Assignment{
		{"BIOL1000U": morning, "CRMN1000U": afternoon},
	}

	schedules := expander.Expand([]string{"BIOL1000U", "CRMN1000U"}, assignments, idx)
	require.Len(t, schedules, 2)
	for _, s := range schedules {
		assert.Equal(t, []string{"44746"}, s["BIOL1000U"])
	}
}

func TestExpandSkipsUnindexedBitmap(t *testing.T) {
	morning, err := timebitmap.FromSpan("0810", "0930", "monday")
	require.NoError(t, err)
	unindexed, err := timebitmap.FromSpan("1240", "1400", "monday")
	require.NoError(t, err)

	idx := expander.NewBitmapIndex()
	idx.Add("BIOL1000U", morning, []string{"44746"})

	assignments := []solver.Assignment{
		{"BIOL1000U": unindexed},
	}

	schedules := expander.Expand([]string{"BIOL1000U"}, assignments, idx)
	assert.Empty(t, schedules)
}
