// Package enumerator expands a course code into the component-section
// tuples (one lecture + one tutorial + one lab, etc.) that jointly
// constitute a valid enrollment in that course.
package enumerator

import (
	"context"
	"fmt"
	"sort"

	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/store"
	schederrors "github.com/oshawa-scheduler/core/pkg/errors"
)

// Enumerator produces valid CRN tuples for a course given its sections,
// consulting the SectionStore only for each primary section's link groups.
type Enumerator struct {
	store store.SectionStore
}

// New builds an Enumerator backed by the given SectionStore.
func New(sectionStore store.SectionStore) *Enumerator {
	return &Enumerator{store: sectionStore}
}

// Combinations returns every CRN tuple that constitutes a valid enrollment
// in courseCode, given the full section map for the term (as returned by
// SectionStore.SectionsFor). Duplicates across primaries are preserved; the
// solver dedupes by bitmap downstream.
func (e *Enumerator) Combinations(ctx context.Context, courseCode string, sections map[string]*models.Section) ([][]string, error) {
	var primaries []*models.Section
	for _, section := range sections {
		if section.SubjectCourse == courseCode && section.IsPrimarySection {
			primaries = append(primaries, section)
		}
	}
	// Deterministic iteration order: Go map iteration is randomized, and the
	// spec ties combination order to "first-encountered" semantics.
	sort.Slice(primaries, func(i, j int) bool {
		return primaries[i].CourseReferenceNumber < primaries[j].CourseReferenceNumber
	})

	var combinations [][]string
	for _, primary := range primaries {
		if !primary.IsSectionLinked {
			combinations = append(combinations, []string{primary.CourseReferenceNumber})
			continue
		}

		groups, err := e.store.LinkedCRNs(ctx, primary)
		if err != nil {
			return nil, schederrors.FromError(err)
		}
		for _, option := range groups {
			tuple := make([]string, 0, 1+len(option))
			tuple = append(tuple, primary.CourseReferenceNumber)
			tuple = append(tuple, option...)
			combinations = append(combinations, tuple)
		}
	}

	if len(combinations) == 0 {
		return nil, schederrors.Clone(schederrors.ErrNoValidCombinations, fmt.Sprintf("no valid section combinations found for %s", courseCode))
	}
	return combinations, nil
}

// ComputePrimarySections returns the set of CRNs that are primary among the
// given sections: every unlinked section, plus, per course, the sections
// whose schedule_type_description has the minimum linked-section count
// (ties broken by first-encountered order during ingest). This mirrors the
// upstream catalog's own primary-section designation and is normally run
// once at ingest time, not per request.
func ComputePrimarySections(sections []models.Section) map[string]bool {
	primary := make(map[string]bool)

	var linked []models.Section
	for _, s := range sections {
		if !s.IsSectionLinked {
			primary[s.CourseReferenceNumber] = true
			continue
		}
		linked = append(linked, s)
	}

	byCourse := make(map[string][]models.Section)
	var courseOrder []string
	for _, s := range linked {
		if _, seen := byCourse[s.SubjectCourse]; !seen {
			courseOrder = append(courseOrder, s.SubjectCourse)
		}
		byCourse[s.SubjectCourse] = append(byCourse[s.SubjectCourse], s)
	}

	for _, course := range courseOrder {
		courseSections := byCourse[course]

		counts := make(map[string]int)
		var typeOrder []string
		for _, s := range courseSections {
			if _, seen := counts[s.ScheduleTypeDescription]; !seen {
				typeOrder = append(typeOrder, s.ScheduleTypeDescription)
			}
			counts[s.ScheduleTypeDescription]++
		}

		minType := typeOrder[0]
		for _, t := range typeOrder[1:] {
			if counts[t] < counts[minType] {
				minType = t
			}
		}

		for _, s := range courseSections {
			if s.ScheduleTypeDescription == minType {
				primary[s.CourseReferenceNumber] = true
			}
		}
	}

	return primary
}
