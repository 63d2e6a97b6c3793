package solver_test

import (
	"context"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshawa-scheduler/core/internal/solver"
	"github.com/oshawa-scheduler/core/internal/timebitmap"
)

func bitmap(t *testing.T, begin, end, day string) timebitmap.TimeBitmap {
	t.Helper()
	bm, err := timebitmap.FromSpan(begin, end, day)
	require.NoError(t, err)
	return bm
}

func TestInvalidSolverKind(t *testing.T) {
	_, err := solver.Solve(context.Background(), solver.Kind("bogus"), solver.Request{})
	require.Error(t, err)
}

func TestCPSolverCompletenessUnbounded(t *testing.T) {
	morning := bitmap(t, "0810", "0930", "monday")
	afternoon := bitmap(t, "1240", "1400", "monday")
	other := bitmap(t, "0810", "0930", "tuesday")

	req := solver.Request{
		CourseCodes: []string{"A", "B"},
		OptionsPerCourse: map[string]mapset.Set[timebitmap.TimeBitmap]{
			"A": mapset.NewSet(morning, other),
			"B": mapset.NewSet(afternoon, morning),
		},
	}

	results, err := solver.Solve(context.Background(), solver.CP, req)
	require.NoError(t, err)

	// Feasible pairs: (morning,afternoon), (other,afternoon), (other,morning).
	// (morning,morning) conflicts, so exactly 3 of the 4 combinations survive.
	assert.Len(t, results, 3)
	for _, assignment := range results {
		assert.False(t, timebitmap.Overlaps(assignment["A"], assignment["B"]))
	}
}

func TestCPSolverInfeasibleReturnsEmpty(t *testing.T) {
	morning := bitmap(t, "0810", "0930", "monday")

	req := solver.Request{
		CourseCodes: []string{"A", "B"},
		OptionsPerCourse: map[string]mapset.Set[timebitmap.TimeBitmap]{
			"A": mapset.NewSet(morning),
			"B": mapset.NewSet(morning),
		},
	}

	results, err := solver.Solve(context.Background(), solver.CP, req)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCPSolverRespectsMaxSolutions(t *testing.T) {
	morning := bitmap(t, "0810", "0930", "monday")
	afternoon := bitmap(t, "1240", "1400", "monday")
	evening := bitmap(t, "1610", "1730", "monday")

	max := 1
	req := solver.Request{
		CourseCodes: []string{"A"},
		OptionsPerCourse: map[string]mapset.Set[timebitmap.TimeBitmap]{
			"A": mapset.NewSet(morning, afternoon, evening),
		},
		MaxSolutions: &max,
	}

	results, err := solver.Solve(context.Background(), solver.CP, req)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRandomSolverSoundness(t *testing.T) {
	morning := bitmap(t, "0810", "0930", "monday")
	afternoon := bitmap(t, "1240", "1400", "monday")
	other := bitmap(t, "0810", "0930", "tuesday")

	max := 20
	limit := 200 * time.Millisecond
	req := solver.Request{
		CourseCodes: []string{"A", "B"},
		OptionsPerCourse: map[string]mapset.Set[timebitmap.TimeBitmap]{
			"A": mapset.NewSet(morning, other),
			"B": mapset.NewSet(afternoon, morning),
		},
		MaxSolutions: &max,
		TimeLimit:    &limit,
	}

	results, err := solver.Solve(context.Background(), solver.Random, req)
	require.NoError(t, err)
	for _, assignment := range results {
		assert.False(t, timebitmap.Overlaps(assignment["A"], assignment["B"]))
	}

	seen := make(map[[2]timebitmap.TimeBitmap]bool)
	for _, assignment := range results {
		key := [2]timebitmap.TimeBitmap{assignment["A"], assignment["B"]}
		assert.False(t, seen[key], "duplicate assignment emitted")
		seen[key] = true
	}
}

func TestRandomSolverInfeasibleTerminatesWithinBudget(t *testing.T) {
	morning := bitmap(t, "0810", "0930", "monday")

	limit := 50 * time.Millisecond
	req := solver.Request{
		CourseCodes: []string{"A", "B"},
		OptionsPerCourse: map[string]mapset.Set[timebitmap.TimeBitmap]{
			"A": mapset.NewSet(morning),
			"B": mapset.NewSet(morning),
		},
		TimeLimit: &limit,
	}

	results, err := solver.Solve(context.Background(), solver.Random, req)
	require.NoError(t, err)
	assert.Empty(t, results)
}
