// Package filter applies ordered hard filters to candidate component-section
// tuples, from the least to the most expensive predicate to evaluate.
package filter

import (
	"context"

	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/store"
	"github.com/oshawa-scheduler/core/internal/timebitmap"
)

const downtownCampus = "OT-Downtown Oshawa"

// Config is the explicit configuration record for enabled filters. Nil
// pointer fields (RemoveClassesBefore/After) mean "not requested".
type Config struct {
	RemoveDowntownClasses bool
	RemoveClassesBefore   *string
	RemoveClassesAfter    *string
	RemoveClosedSections  bool
}

// Pipeline applies a Config against candidate tuples, memoizing each CRN's
// per-filter verdict within a single call so that sections shared across
// many tuples are only evaluated once.
type Pipeline struct {
	store store.SectionStore
}

// New builds a Pipeline backed by the given SectionStore, used only for the
// remove_closed_sections predicate's enrollment lookups.
func New(sectionStore store.SectionStore) *Pipeline {
	return &Pipeline{store: sectionStore}
}

// Apply filters a course's candidate tuples, returning only those whose
// every section passes every enabled filter.
func (p *Pipeline) Apply(ctx context.Context, cfg Config, sections map[string]*models.Section, combinations [][]string) ([][]string, error) {
	beforeMask, afterMask, err := buildMasks(cfg)
	if err != nil {
		return nil, err
	}

	memo := make(map[string]bool)
	var survivors [][]string

	for _, tuple := range combinations {
		ok, err := p.tuplePasses(ctx, cfg, sections, tuple, beforeMask, afterMask, memo)
		if err != nil {
			return nil, err
		}
		if ok {
			survivors = append(survivors, tuple)
		}
	}
	return survivors, nil
}

func (p *Pipeline) tuplePasses(ctx context.Context, cfg Config, sections map[string]*models.Section, tuple []string, beforeMask, afterMask *timebitmap.TimeBitmap, memo map[string]bool) (bool, error) {
	for _, crn := range tuple {
		filtered, cached := memo[crn]
		if !cached {
			var err error
			filtered, err = p.isFiltered(ctx, cfg, sections[crn], beforeMask, afterMask)
			if err != nil {
				return false, err
			}
			memo[crn] = filtered
		}
		if filtered {
			return false, nil
		}
	}
	return true, nil
}

// isFiltered evaluates filters from least to most expensive: pure local
// checks (downtown, before, after) before the one predicate that may reach
// out to the enrollment oracle (closed sections).
func (p *Pipeline) isFiltered(ctx context.Context, cfg Config, section *models.Section, beforeMask, afterMask *timebitmap.TimeBitmap) (bool, error) {
	if cfg.RemoveDowntownClasses && isDowntown(section) {
		return true, nil
	}
	if beforeMask != nil && timebitmap.Overlaps(*beforeMask, section.TimeBitmap()) {
		return true, nil
	}
	if afterMask != nil && timebitmap.Overlaps(*afterMask, section.TimeBitmap()) {
		return true, nil
	}
	if cfg.RemoveClosedSections {
		info, err := p.store.EnrollmentInfo(ctx, section, false)
		if err != nil {
			return false, err
		}
		if info.IsClosed() {
			return true, nil
		}
	}
	return false, nil
}

func isDowntown(section *models.Section) bool {
	return section.CampusDescription == downtownCampus
}

func buildMasks(cfg Config) (before, after *timebitmap.TimeBitmap, err error) {
	if cfg.RemoveClassesBefore != nil {
		mask, err := timebitmap.MaskBefore(*cfg.RemoveClassesBefore)
		if err != nil {
			return nil, nil, err
		}
		before = &mask
	}
	if cfg.RemoveClassesAfter != nil {
		mask, err := timebitmap.MaskAfter(*cfg.RemoveClassesAfter)
		if err != nil {
			return nil, nil, err
		}
		after = &mask
	}
	return before, after, nil
}
