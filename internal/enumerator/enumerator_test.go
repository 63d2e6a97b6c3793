package enumerator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshawa-scheduler/core/internal/enumerator"
	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/store/memory"
)

func TestCombinationsCounts(t *testing.T) {
	s := memory.New(memory.Catalog202309())
	e := enumerator.New(s)
	ctx := context.Background()

	cases := []struct {
		course string
		want   int
	}{
		{"BIOL1000U", 1},
		{"CRMN1000U", 2},
		{"CSCI2000U", 7},
	}

	for _, tc := range cases {
		sections, err := s.SectionsFor(ctx, "202309", []string{"BIOL1000U", "CRMN1000U", "CSCI2000U"})
		require.NoError(t, err)

		combos, err := e.Combinations(ctx, tc.course, sections)
		require.NoError(t, err)
		assert.Lenf(t, combos, tc.want, "course %s", tc.course)
	}
}

func TestCombinationsUnlinkedSectionEmitsSingletonTuple(t *testing.T) {
	s := memory.New(memory.Catalog202309())
	e := enumerator.New(s)
	ctx := context.Background()

	sections, err := s.SectionsFor(ctx, "202309", []string{"BIOL1000U"})
	require.NoError(t, err)

	combos, err := e.Combinations(ctx, "BIOL1000U", sections)
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, []string{"44746"}, combos[0])
}

func TestCombinationsNoPrimarySectionsIsError(t *testing.T) {
	s := memory.New(memory.Catalog202309())
	e := enumerator.New(s)
	ctx := context.Background()

	sections, err := s.SectionsFor(ctx, "202309", []string{"BIOL1000U"})
	require.NoError(t, err)

	_, err = e.Combinations(ctx, "NOPE0000U", sections)
	require.Error(t, err)
}

func TestComputePrimarySectionsMinCountWins(t *testing.T) {
	sections := []models.Section{
		{CourseReferenceNumber: "1", SubjectCourse: "X", ScheduleTypeDescription: "LEC", IsSectionLinked: true},
		{CourseReferenceNumber: "2", SubjectCourse: "X", ScheduleTypeDescription: "TUT", IsSectionLinked: true},
		{CourseReferenceNumber: "3", SubjectCourse: "X", ScheduleTypeDescription: "TUT", IsSectionLinked: true},
		{CourseReferenceNumber: "4", SubjectCourse: "X", ScheduleTypeDescription: "LAB", IsSectionLinked: false},
	}

	primary := enumerator.ComputePrimarySections(sections)
	assert.True(t, primary["1"])  // LEC: only one, minimum count
	assert.False(t, primary["2"]) // TUT: two sections, not minimum
	assert.False(t, primary["3"])
	assert.True(t, primary["4"]) // unlinked sections are always primary
}
