// Package store defines the read-only contract the scheduling core uses to
// reach section data owned by an external catalog. The core never mutates
// anything behind this interface.
package store

import (
	"context"

	"github.com/oshawa-scheduler/core/internal/models"
)

// SectionStore is consumed read-only by the core. Implementations may hit a
// database, an in-memory fixture, or a live upstream oracle; failures to
// reach the backing data are reported as pkg/errors.ErrUpstreamUnavailable.
// A stored meeting time that is not a known slot boundary surfaces as the
// TimeBitmap construction error instead.
type SectionStore interface {
	// SectionsFor performs a single batch fetch of all sections for the
	// requested courses within a term, keyed by CRN.
	SectionsFor(ctx context.Context, term string, courseCodes []string) (map[string]*models.Section, error)

	// LinkedCRNs returns the alternative link groups for a section. Returns
	// an empty result for sections that are not section-linked.
	LinkedCRNs(ctx context.Context, section *models.Section) (models.LinkedCRNs, error)

	// EnrollmentInfo returns seat availability for a section, optionally
	// bypassing the cache to force a refresh from the upstream oracle.
	EnrollmentInfo(ctx context.Context, section *models.Section, forceRefresh bool) (models.EnrollmentInfo, error)
}
