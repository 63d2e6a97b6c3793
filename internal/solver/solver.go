// Package solver assigns one TimeBitmap option per course such that no two
// selected bitmaps overlap, enumerating solutions under a time budget and an
// optional solution cap. Two interchangeable strategies are offered: a
// uniform-random sampler and a complete constraint-style backtracking search.
package solver

import (
	"context"
	"math/rand"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/oshawa-scheduler/core/internal/timebitmap"
	schederrors "github.com/oshawa-scheduler/core/pkg/errors"
)

// Kind selects which solver strategy to run.
type Kind string

const (
	Random Kind = "random"
	CP     Kind = "cp"
)

// MaxCourses bounds the number of course codes a single request may carry
// (the TooManyCourses validation cap); assignment dedup keys are sized to it.
const MaxCourses = 10

// Assignment maps a course code to the single TimeBitmap selected for it.
type Assignment map[string]timebitmap.TimeBitmap

// Request bundles everything a solver strategy needs.
type Request struct {
	CourseCodes      []string
	OptionsPerCourse map[string]mapset.Set[timebitmap.TimeBitmap]
	TimeLimit        *time.Duration
	MaxSolutions     *int
}

// Solve dispatches to the requested strategy. Both strategies honor ctx
// cancellation and, if set, req.TimeLimit as an additional local budget.
func Solve(ctx context.Context, kind Kind, req Request) ([]Assignment, error) {
	ctx, cancel := withBudget(ctx, req.TimeLimit)
	defer cancel()

	switch kind {
	case Random:
		return solveRandom(ctx, req)
	case CP:
		return solveCP(ctx, req)
	default:
		return nil, schederrors.Clone(schederrors.ErrInvalidSolverKind, "invalid solver kind: "+string(kind))
	}
}

func withBudget(ctx context.Context, limit *time.Duration) (context.Context, context.CancelFunc) {
	if limit == nil {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, *limit)
}

// solveRandom repeatedly draws one uniformly-random option per course,
// rejecting overlapping and duplicate draws, until the time budget elapses
// or max_solutions is reached. No completeness guarantee; never emits a
// conflicting or duplicate assignment.
func solveRandom(ctx context.Context, req Request) ([]Assignment, error) {
	options := make(map[string][]timebitmap.TimeBitmap, len(req.CourseCodes))
	for _, code := range req.CourseCodes {
		options[code] = req.OptionsPerCourse[code].ToSlice()
	}

	var results []Assignment
	seen := make(map[[MaxCourses]timebitmap.TimeBitmap]bool)

	for {
		if ctx.Err() != nil {
			break
		}
		if req.MaxSolutions != nil && len(results) >= *req.MaxSolutions {
			break
		}

		assignment := make(Assignment, len(req.CourseCodes))
		bitmaps := make([]timebitmap.TimeBitmap, len(req.CourseCodes))
		for i, code := range req.CourseCodes {
			choices := options[code]
			if len(choices) == 0 {
				continue
			}
			bm := choices[rand.Intn(len(choices))]
			assignment[code] = bm
			bitmaps[i] = bm
		}

		if timebitmap.Overlaps(bitmaps...) {
			continue
		}

		var key [MaxCourses]timebitmap.TimeBitmap
		copy(key[:], bitmaps)
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, assignment)
	}

	return results, nil
}

// solveCP performs a deterministic backtracking search equivalent to the
// exactly-one / pairwise-no-overlap constraint model: one decision variable
// per (course, option) pair, an exactly-one constraint per course, and a
// pairwise mutual-exclusion constraint for every overlapping option pair
// across distinct courses. Plain exhaustive backtracking with a running-union
// prune enumerates precisely the feasible solutions of that model; no
// external constraint-programming library is available in this module's
// ecosystem, so the search is implemented natively rather than via a solver
// binding.
func solveCP(ctx context.Context, req Request) ([]Assignment, error) {
	options := make(map[string][]timebitmap.TimeBitmap, len(req.CourseCodes))
	for _, code := range req.CourseCodes {
		options[code] = req.OptionsPerCourse[code].ToSlice()
	}

	var results []Assignment
	current := make(Assignment, len(req.CourseCodes))

	var backtrack func(idx int, union timebitmap.TimeBitmap) bool
	backtrack = func(idx int, union timebitmap.TimeBitmap) bool {
		if ctx.Err() != nil {
			return true // stop: budget exhausted
		}
		if req.MaxSolutions != nil && len(results) >= *req.MaxSolutions {
			return true
		}
		if idx == len(req.CourseCodes) {
			snapshot := make(Assignment, len(current))
			for k, v := range current {
				snapshot[k] = v
			}
			results = append(results, snapshot)
			return req.MaxSolutions != nil && len(results) >= *req.MaxSolutions
		}

		code := req.CourseCodes[idx]
		for _, option := range options[code] {
			if !timebitmap.IsEmpty(timebitmap.Intersect(union, option)) {
				continue
			}
			current[code] = option
			if stop := backtrack(idx+1, timebitmap.Union(union, option)); stop {
				delete(current, code)
				return true
			}
			delete(current, code)
			if ctx.Err() != nil {
				return true
			}
		}
		return false
	}

	backtrack(0, timebitmap.Empty())
	return results, nil
}
