package postgres

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/timebitmap"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSectionsForJoinsMeetingTimes(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	s := New(db)

	sectionRows := sqlmock.NewRows([]string{"course_reference_number", "term_id", "subject_course",
		"schedule_type_description", "link_identifier", "is_section_linked", "is_primary_section", "campus_description"}).
		AddRow("40288", "202309", "MATH1010U", "LEC", "", false, false, "OT-North Oshawa")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT course_reference_number, term_id, subject_course, schedule_type_description")).
		WillReturnRows(sectionRows)

	meetingRows := sqlmock.NewRows([]string{"section_crn", "begin_time", "end_time", "monday", "tuesday",
		"wednesday", "thursday", "friday", "saturday", "sunday", "start_date", "end_date"}).
		AddRow("40288", "1240", "1400", false, true, false, false, true, false, false, "", "")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT section_crn, begin_time, end_time, monday, tuesday, wednesday")).
		WillReturnRows(meetingRows)

	sections, err := s.SectionsFor(context.Background(), "202309", []string{"MATH1010U"})
	require.NoError(t, err)
	require.Contains(t, sections, "40288")
	assert.False(t, timebitmap.IsEmpty(sections["40288"].TimeBitmap()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionsForEmptyCourseListShortCircuits(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	s := New(db)

	sections, err := s.SectionsFor(context.Background(), "202309", nil)
	require.NoError(t, err)
	assert.Empty(t, sections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkedCRNsGroupsByIndex(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	s := New(db)

	rows := sqlmock.NewRows([]string{"group_index", "crn"}).
		AddRow(0, "43101").
		AddRow(1, "43102")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT group_index, crn FROM linked_crn_groups")).
		WithArgs("202309", "43100").
		WillReturnRows(rows)

	section, err := models.NewSection("43100", "202309", "CSCI2000U", "LEC", "CSCI2000-L1", true, true, "OT-North Oshawa", nil)
	require.NoError(t, err)

	groups, err := s.LinkedCRNs(context.Background(), section)
	require.NoError(t, err)
	assert.Equal(t, models.LinkedCRNs{{"43101"}, {"43102"}}, groups)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkedCRNsSkipsQueryWhenUnlinked(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	s := New(db)

	section, err := models.NewSection("44746", "202309", "BIOL1000U", "LEC", "", false, false, "OT-North Oshawa", nil)
	require.NoError(t, err)

	groups, err := s.LinkedCRNs(context.Background(), section)
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentInfoForceRefreshUsesLiveTable(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	s := New(db)

	rows := sqlmock.NewRows([]string{"enrollment", "maximum_enrollment", "seats_available", "wait_capacity", "wait_count", "wait_available"}).
		AddRow(10, 30, 20, 0, 0, 0)
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollment_info_live WHERE")).
		WillReturnRows(rows)

	section, err := models.NewSection("40372", "202309", "PSYC1000U", "LEC", "", false, false, "OT-North Oshawa", nil)
	require.NoError(t, err)

	info, err := s.EnrollmentInfo(context.Background(), section, true)
	require.NoError(t, err)
	assert.False(t, info.IsClosed())
	assert.NoError(t, mock.ExpectationsWereMet())
}
