package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsForFiltersByCourseAndTerm(t *testing.T) {
	s := New(Catalog202309())

	sections, err := s.SectionsFor(context.Background(), "202309", []string{"BIOL1000U"})
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Contains(t, sections, "44746")
}

func TestSectionsForUnknownTermIsUpstreamUnavailable(t *testing.T) {
	s := New(Catalog202309())

	_, err := s.SectionsFor(context.Background(), "000000", []string{"BIOL1000U"})
	require.Error(t, err)
}

func TestLinkedCRNsEmptyForUnlinkedSection(t *testing.T) {
	s := New(Catalog202309())

	sections, err := s.SectionsFor(context.Background(), "202309", []string{"BIOL1000U"})
	require.NoError(t, err)

	groups, err := s.LinkedCRNs(context.Background(), sections["44746"])
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestLinkedCRNsReturnsGroupsForLinkedSection(t *testing.T) {
	s := New(Catalog202309())

	sections, err := s.SectionsFor(context.Background(), "202309", []string{"CRMN1000U"})
	require.NoError(t, err)

	groups, err := s.LinkedCRNs(context.Background(), sections["42600"])
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestEnrollmentInfoOpenVsClosedSection(t *testing.T) {
	s := New(Catalog202309())
	sections, err := s.SectionsFor(context.Background(), "202309", []string{"PSYC1000U"})
	require.NoError(t, err)

	open, err := s.EnrollmentInfo(context.Background(), sections["40372"], false)
	require.NoError(t, err)
	assert.False(t, open.IsClosed())

	closed, err := s.EnrollmentInfo(context.Background(), sections["40371"], false)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed())
}
