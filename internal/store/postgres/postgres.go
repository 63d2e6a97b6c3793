// Package postgres implements store.SectionStore over the catalog tables
// populated by the upstream ingestor: sections, meeting_times,
// linked_crn_groups and enrollment_info.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/store"
	schederrors "github.com/oshawa-scheduler/core/pkg/errors"
)

// Store adapts a Postgres-backed catalog to store.SectionStore.
type Store struct {
	db *sqlx.DB
}

// New wraps an open connection pool as a store.SectionStore.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

var _ store.SectionStore = (*Store)(nil)

type sectionRow struct {
	CourseReferenceNumber   string `db:"course_reference_number"`
	TermID                  string `db:"term_id"`
	SubjectCourse           string `db:"subject_course"`
	ScheduleTypeDescription string `db:"schedule_type_description"`
	LinkIdentifier          string `db:"link_identifier"`
	IsSectionLinked         bool   `db:"is_section_linked"`
	IsPrimarySection        bool   `db:"is_primary_section"`
	CampusDescription       string `db:"campus_description"`
}

type meetingRow struct {
	SectionCRN string `db:"section_crn"`
	models.MeetingTime
}

// SectionsFor loads every section for the requested courses within a term,
// followed by a single batched fetch of their meeting times.
func (s *Store) SectionsFor(ctx context.Context, term string, courseCodes []string) (map[string]*models.Section, error) {
	if len(courseCodes) == 0 {
		return map[string]*models.Section{}, nil
	}

	query, args, err := sqlx.In(`SELECT course_reference_number, term_id, subject_course, schedule_type_description,
		link_identifier, is_section_linked, is_primary_section, campus_description
		FROM sections WHERE term_id = ? AND subject_course IN (?)`, term, courseCodes)
	if err != nil {
		return nil, schederrors.Clone(schederrors.ErrUpstreamUnavailable, fmt.Sprintf("build sections query: %v", err))
	}
	query = s.db.Rebind(query)

	var rows []sectionRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, schederrors.Clone(schederrors.ErrUpstreamUnavailable, fmt.Sprintf("select sections: %v", err))
	}
	if len(rows) == 0 {
		return map[string]*models.Section{}, nil
	}

	crns := make([]string, 0, len(rows))
	for _, r := range rows {
		crns = append(crns, r.CourseReferenceNumber)
	}
	meetingsByCRN, err := s.meetingsFor(ctx, term, crns)
	if err != nil {
		return nil, err
	}

	result := make(map[string]*models.Section, len(rows))
	for _, r := range rows {
		meetings := meetingsByCRN[r.CourseReferenceNumber]
		section, err := models.NewSection(r.CourseReferenceNumber, r.TermID, r.SubjectCourse, r.ScheduleTypeDescription,
			r.LinkIdentifier, r.IsSectionLinked, r.IsPrimarySection, r.CampusDescription, meetings)
		if err != nil {
			return nil, err
		}
		result[r.CourseReferenceNumber] = section
	}
	return result, nil
}

func (s *Store) meetingsFor(ctx context.Context, term string, crns []string) (map[string][]models.MeetingFaculty, error) {
	query, args, err := sqlx.In(`SELECT section_crn, begin_time, end_time, monday, tuesday, wednesday,
		thursday, friday, saturday, sunday, start_date, end_date
		FROM meeting_times WHERE term_id = ? AND section_crn IN (?)`, term, crns)
	if err != nil {
		return nil, schederrors.Clone(schederrors.ErrUpstreamUnavailable, fmt.Sprintf("build meetings query: %v", err))
	}
	query = s.db.Rebind(query)

	var rows []meetingRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, schederrors.Clone(schederrors.ErrUpstreamUnavailable, fmt.Sprintf("select meeting times: %v", err))
	}

	byCRN := make(map[string][]models.MeetingFaculty, len(crns))
	for _, r := range rows {
		byCRN[r.SectionCRN] = append(byCRN[r.SectionCRN], models.MeetingFaculty{MeetingTime: r.MeetingTime})
	}
	return byCRN, nil
}

// LinkedCRNs returns the alternative link groups stored for a linked section.
func (s *Store) LinkedCRNs(ctx context.Context, section *models.Section) (models.LinkedCRNs, error) {
	if !section.IsSectionLinked {
		return nil, nil
	}

	const query = `SELECT group_index, crn FROM linked_crn_groups
		WHERE term_id = $1 AND section_crn = $2 ORDER BY group_index, crn`

	var rows []struct {
		GroupIndex int    `db:"group_index"`
		CRN        string `db:"crn"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, section.TermID, section.CourseReferenceNumber); err != nil {
		return nil, schederrors.Clone(schederrors.ErrUpstreamUnavailable, fmt.Sprintf("select linked crns: %v", err))
	}

	groups := make(map[int][]string)
	var order []int
	for _, r := range rows {
		if _, seen := groups[r.GroupIndex]; !seen {
			order = append(order, r.GroupIndex)
		}
		groups[r.GroupIndex] = append(groups[r.GroupIndex], r.CRN)
	}

	result := make(models.LinkedCRNs, 0, len(order))
	for _, idx := range order {
		result = append(result, groups[idx])
	}
	return result, nil
}

// EnrollmentInfo returns cached seat availability, or queries the upstream
// oracle table directly when forceRefresh is set (the cache layer above this
// store is responsible for actually bypassing its own TTL).
func (s *Store) EnrollmentInfo(ctx context.Context, section *models.Section, forceRefresh bool) (models.EnrollmentInfo, error) {
	table := "enrollment_info"
	if forceRefresh {
		table = "enrollment_info_live"
	}

	query := fmt.Sprintf(`SELECT enrollment, maximum_enrollment, seats_available, wait_capacity,
		wait_count, wait_available FROM %s WHERE term_id = $1 AND section_crn = $2`, table)

	var info models.EnrollmentInfo
	if err := s.db.GetContext(ctx, &info, query, section.TermID, section.CourseReferenceNumber); err != nil {
		return models.EnrollmentInfo{}, schederrors.Clone(schederrors.ErrUpstreamUnavailable, fmt.Sprintf("select enrollment info: %v", err))
	}
	return info, nil
}

// CourseDescriptions loads the Course rows matching the given codes, used by
// callers that need human-readable titles alongside schedules.
func (s *Store) CourseDescriptions(ctx context.Context, courseCodes []string) (map[string]models.Course, error) {
	if len(courseCodes) == 0 {
		return map[string]models.Course{}, nil
	}

	query, args, err := sqlx.In(`SELECT subject_course, subject, subject_description, course_title, course_number
		FROM courses WHERE subject_course IN (?)`, courseCodes)
	if err != nil {
		return nil, schederrors.Clone(schederrors.ErrUpstreamUnavailable, fmt.Sprintf("build courses query: %v", err))
	}
	query = s.db.Rebind(query)

	var rows []models.Course
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, schederrors.Clone(schederrors.ErrUpstreamUnavailable, fmt.Sprintf("select courses: %v", err))
	}

	result := make(map[string]models.Course, len(rows))
	for _, c := range rows {
		result[c.SubjectCourse] = c
	}
	return result, nil
}
