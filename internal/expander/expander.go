// Package expander maps a solver's compressed bitmap assignments back to
// every concrete section-tuple combination that induced those bitmaps.
package expander

import (
	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/solver"
	"github.com/oshawa-scheduler/core/internal/timebitmap"
)

// BitmapIndex tracks, per course, which CRN tuples compress to which
// TimeBitmap. A single bitmap can be induced by multiple tuples (same
// meeting times, different instructors), so the value is a tuple list.
type BitmapIndex map[string]map[timebitmap.TimeBitmap][][]string

// NewBitmapIndex builds an empty index.
func NewBitmapIndex() BitmapIndex {
	return make(BitmapIndex)
}

// Add records that tuple, for courseCode, compresses to bitmap.
func (idx BitmapIndex) Add(courseCode string, bitmap timebitmap.TimeBitmap, tuple []string) {
	if idx[courseCode] == nil {
		idx[courseCode] = make(map[timebitmap.TimeBitmap][][]string)
	}
	idx[courseCode][bitmap] = append(idx[courseCode][bitmap], tuple)
}

// Expand replaces each (course_code, bitmap) pair in every solver assignment
// with every CRN tuple that produced that bitmap for that course, then takes
// the cartesian product across courses to yield concrete Schedules.
func Expand(courseCodes []string, assignments []solver.Assignment, index BitmapIndex) []models.Schedule {
	var schedules []models.Schedule

	for _, assignment := range assignments {
		tupleLists := make([][][]string, len(courseCodes))
		feasible := true
		for i, code := range courseCodes {
			tuples := index[code][assignment[code]]
			if len(tuples) == 0 {
				feasible = false
				break
			}
			tupleLists[i] = tuples
		}
		if !feasible {
			continue
		}
		cartesianProduct(courseCodes, tupleLists, 0, make(models.Schedule, len(courseCodes)), &schedules)
	}

	return schedules
}

func cartesianProduct(courseCodes []string, tupleLists [][][]string, idx int, current models.Schedule, out *[]models.Schedule) {
	if idx == len(courseCodes) {
		snapshot := make(models.Schedule, len(current))
		for k, v := range current {
			snapshot[k] = append([]string(nil), v...)
		}
		*out = append(*out, snapshot)
		return
	}

	code := courseCodes[idx]
	for _, tuple := range tupleLists[idx] {
		current[code] = tuple
		cartesianProduct(courseCodes, tupleLists, idx+1, current, out)
	}
	delete(current, code)
}
