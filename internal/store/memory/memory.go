// Package memory implements store.SectionStore over an in-process fixture.
// It backs the unit tests, the demo CLI, and serves as the default
// LinkedCRNs/EnrollmentInfo source when no live oracle is configured.
package memory

import (
	"context"
	"fmt"

	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/store"
	schederrors "github.com/oshawa-scheduler/core/pkg/errors"
)

// Fixture holds injected Term/Course/Section data plus the cached side
// tables (linked CRNs, enrollment info) a real catalog would expose.
type Fixture struct {
	terms      map[string]models.Term
	courses    map[string]models.Course
	sections   map[string]map[string]*models.Section // term -> crn -> section
	linkedCRNs map[string]models.LinkedCRNs           // "term|crn" -> groups
	enrollment map[string]models.EnrollmentInfo       // "term|crn" -> info
}

// NewFixture builds an empty fixture ready for Add* calls.
func NewFixture() *Fixture {
	return &Fixture{
		terms:      make(map[string]models.Term),
		courses:    make(map[string]models.Course),
		sections:   make(map[string]map[string]*models.Section),
		linkedCRNs: make(map[string]models.LinkedCRNs),
		enrollment: make(map[string]models.EnrollmentInfo),
	}
}

// AddTerm registers a term.
func (f *Fixture) AddTerm(t models.Term) { f.terms[t.ID] = t }

// AddCourse registers a course.
func (f *Fixture) AddCourse(c models.Course) { f.courses[c.SubjectCourse] = c }

// mustAddSection builds and registers a section, panicking on malformed
// fixture data since fixtures are fixed at compile time.
func (f *Fixture) mustAddSection(term, crn, subjectCourse, scheduleType, linkIdentifier string, isLinked, isPrimary bool, campus string, meetings []models.MeetingFaculty) {
	section, err := models.NewSection(crn, term, subjectCourse, scheduleType, linkIdentifier, isLinked, isPrimary, campus, meetings)
	if err != nil {
		panic(fmt.Sprintf("memory: invalid fixture section %s: %v", crn, err))
	}
	if f.sections[term] == nil {
		f.sections[term] = make(map[string]*models.Section)
	}
	f.sections[term][crn] = section
}

// Store adapts a Fixture to store.SectionStore.
type Store struct {
	fixture *Fixture
}

// New wraps a Fixture as a store.SectionStore.
func New(fixture *Fixture) *Store {
	return &Store{fixture: fixture}
}

var _ store.SectionStore = (*Store)(nil)

// SectionsFor returns every section for the requested courses within term.
func (s *Store) SectionsFor(_ context.Context, term string, courseCodes []string) (map[string]*models.Section, error) {
	byCRN, ok := s.fixture.sections[term]
	if !ok {
		return nil, schederrors.Clone(schederrors.ErrUpstreamUnavailable, fmt.Sprintf("unknown term %q", term))
	}

	wanted := make(map[string]bool, len(courseCodes))
	for _, code := range courseCodes {
		wanted[code] = true
	}

	result := make(map[string]*models.Section)
	for crn, section := range byCRN {
		if wanted[section.SubjectCourse] {
			result[crn] = section
		}
	}
	return result, nil
}

// LinkedCRNs returns the cached link groups for a section.
func (s *Store) LinkedCRNs(_ context.Context, section *models.Section) (models.LinkedCRNs, error) {
	if !section.IsSectionLinked {
		return nil, nil
	}
	key := section.TermID + "|" + section.CourseReferenceNumber
	return s.fixture.linkedCRNs[key], nil
}

// EnrollmentInfo returns seat availability for a section. forceRefresh is a
// no-op here since the fixture has no upstream oracle to refresh from.
func (s *Store) EnrollmentInfo(_ context.Context, section *models.Section, _ bool) (models.EnrollmentInfo, error) {
	key := section.TermID + "|" + section.CourseReferenceNumber
	info, ok := s.fixture.enrollment[key]
	if !ok {
		// Sections with no seat data on record are reported with one seat
		// available, so they count as open; only the enrollment scenario
		// sections carry real seat data.
		open := 1
		return models.EnrollmentInfo{SeatsAvailable: &open}, nil
	}
	return info, nil
}
