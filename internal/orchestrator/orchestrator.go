// Package orchestrator wires SectionStore, CombinationEnumerator,
// FilterPipeline, Solver, ScheduleExpander and Scorer into the single
// Generate request/response cycle external callers use.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oshawa-scheduler/core/internal/dto"
	"github.com/oshawa-scheduler/core/internal/enumerator"
	"github.com/oshawa-scheduler/core/internal/expander"
	"github.com/oshawa-scheduler/core/internal/filter"
	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/scorer"
	"github.com/oshawa-scheduler/core/internal/solver"
	"github.com/oshawa-scheduler/core/internal/store"
	"github.com/oshawa-scheduler/core/internal/timebitmap"
	appErrors "github.com/oshawa-scheduler/core/pkg/errors"
)

// Defaults holds the request-level defaults and caps the Orchestrator
// applies when a request leaves them unset.
type Defaults struct {
	NumSchedules   int
	Solver         solver.Kind
	TimeLimit      time.Duration
	MaxCourseCodes int
}

// Orchestrator runs the full generation pipeline for a single request.
type Orchestrator struct {
	store     store.SectionStore
	enumer    *enumerator.Enumerator
	filters   *filter.Pipeline
	defaults  Defaults
	validator *validator.Validate
	logger    *zap.Logger
}

// New builds an Orchestrator backed by sectionStore.
func New(sectionStore store.SectionStore, defaults Defaults, validate *validator.Validate, logger *zap.Logger) *Orchestrator {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.NumSchedules <= 0 {
		defaults.NumSchedules = 3
	}
	if defaults.Solver == "" {
		defaults.Solver = solver.CP
	}
	if defaults.MaxCourseCodes <= 0 {
		defaults.MaxCourseCodes = 10
	}
	return &Orchestrator{
		store:     sectionStore,
		enumer:    enumerator.New(sectionStore),
		filters:   filter.New(sectionStore),
		defaults:  defaults,
		validator: validate,
		logger:    logger,
	}
}

// Generate runs SectionStore → CombinationEnumerator → FilterPipeline →
// Solver → ScheduleExpander → Scorer for a single request, returning the
// wire-level response.
func (o *Orchestrator) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if req.NumSchedules == 0 {
		req.NumSchedules = o.defaults.NumSchedules
	}
	if req.Solver == "" {
		req.Solver = string(o.defaults.Solver)
	}
	req.Defaults()
	correlationID := uuid.NewString()
	logger := o.logger.With(zap.String("correlation_id", correlationID), zap.String("term", req.Term))

	if len(req.CourseCodes) > o.defaults.MaxCourseCodes {
		return nil, appErrors.Clone(appErrors.ErrTooManyCourses, fmt.Sprintf("at most %d course codes may be requested", o.defaults.MaxCourseCodes))
	}
	if err := o.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid schedule generation request")
	}

	kind := solver.Kind(req.Solver)
	if kind != solver.Random && kind != solver.CP {
		kind = o.defaults.Solver
	}

	ctx, cancel := o.deadline(ctx, req.TimeLimitSeconds)
	defer cancel()

	sections, err := o.store.SectionsFor(ctx, req.Term, req.CourseCodes)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	index := expander.NewBitmapIndex()
	optionsPerCourse := make(map[string]mapset.Set[timebitmap.TimeBitmap], len(req.CourseCodes))
	filterCfg := toFilterConfig(req.Filters)

	for _, code := range req.CourseCodes {
		combinations, err := o.enumer.Combinations(ctx, code, sections)
		if err != nil {
			return nil, appErrors.FromError(err)
		}

		survivors, err := o.filters.Apply(ctx, filterCfg, sections, combinations)
		if err != nil {
			return nil, appErrors.FromError(err)
		}
		if len(survivors) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNoValidCombinations, fmt.Sprintf("no valid section combinations found for %s", code))
		}

		options := mapset.NewThreadUnsafeSet[timebitmap.TimeBitmap]()
		for _, tuple := range survivors {
			bitmap, ok := tupleBitmap(tuple, sections)
			if !ok {
				// Internal conflict among the tuple's own sections (e.g. an
				// ill-formed linked group) — discard per spec section 4.8 step 3.
				continue
			}
			options.Add(bitmap)
			index.Add(code, bitmap, tuple)
		}
		if options.Cardinality() == 0 {
			return nil, appErrors.Clone(appErrors.ErrNoValidCombinations, fmt.Sprintf("no valid section combinations found for %s", code))
		}
		optionsPerCourse[code] = options
	}

	var maxSolutions *int
	if req.MaxSolutions != nil {
		maxSolutions = req.MaxSolutions
	}
	var timeLimit *time.Duration
	if req.TimeLimitSeconds != nil {
		d := time.Duration(*req.TimeLimitSeconds) * time.Second
		timeLimit = &d
	}

	assignments, err := solver.Solve(ctx, kind, solver.Request{
		CourseCodes:      req.CourseCodes,
		OptionsPerCourse: optionsPerCourse,
		TimeLimit:        timeLimit,
		MaxSolutions:     maxSolutions,
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	schedules := expander.Expand(req.CourseCodes, assignments, index)
	logger.Info("generated candidate schedules", zap.Int("count", len(schedules)))

	ranked := o.rank(schedules, req.Preferences, sections)
	if req.NumSchedules > 0 && len(ranked) > req.NumSchedules {
		ranked = ranked[:req.NumSchedules]
	}

	return &dto.GenerateScheduleResponse{Schedules: toWireSchedules(ranked)}, nil
}

// deadline bounds the whole request. A request-supplied time limit is also
// the solver's own budget, so the request deadline adds a fixed allowance on
// top of it for the loading, filtering and expansion work around the solver.
func (o *Orchestrator) deadline(ctx context.Context, timeLimitSeconds *int) (context.Context, context.CancelFunc) {
	const allowance = time.Second
	limit := o.defaults.TimeLimit
	if timeLimitSeconds != nil {
		limit = time.Duration(*timeLimitSeconds)*time.Second + allowance
	}
	if limit <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, limit)
}

// rank orders candidate schedules by descending score when preferences were
// supplied; otherwise it returns them unchanged (insertion order), per
// spec section 6. Go's sort is unstable only between equal keys it doesn't
// compare, so ties are broken explicitly by original index to keep
// insertion order stable.
func (o *Orchestrator) rank(schedules []models.Schedule, prefsCfg *dto.PreferencesConfig, sections map[string]*models.Section) []models.Schedule {
	if prefsCfg == nil {
		return schedules
	}
	prefs := toPreferences(prefsCfg)

	type scored struct {
		schedule models.Schedule
		score    float64
		index    int
	}
	ranked := make([]scored, len(schedules))
	for i, s := range schedules {
		ranked[i] = scored{schedule: s, score: scorer.Score(s, prefs, sections), index: i}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})

	out := make([]models.Schedule, len(ranked))
	for i, r := range ranked {
		out[i] = r.schedule
	}
	return out
}

// tupleBitmap unions the TimeBitmaps of every section in tuple, returning
// ok=false if any two of the tuple's own sections overlap — an internal
// conflict that disqualifies the whole tuple (spec section 4.8 step 3).
func tupleBitmap(tuple []string, sections map[string]*models.Section) (timebitmap.TimeBitmap, bool) {
	bitmaps := make([]timebitmap.TimeBitmap, 0, len(tuple))
	for _, crn := range tuple {
		if section, ok := sections[crn]; ok {
			bitmaps = append(bitmaps, section.TimeBitmap())
		}
	}
	if timebitmap.Overlaps(bitmaps...) {
		return timebitmap.Empty(), false
	}
	out := timebitmap.Empty()
	for _, b := range bitmaps {
		out = timebitmap.Union(out, b)
	}
	return out, true
}

func toFilterConfig(cfg *dto.FiltersConfig) filter.Config {
	if cfg == nil {
		return filter.Config{}
	}
	return filter.Config{
		RemoveDowntownClasses: boolValue(cfg.RemoveDowntownClasses),
		RemoveClassesBefore:   cfg.RemoveClassesBefore,
		RemoveClassesAfter:    cfg.RemoveClassesAfter,
		RemoveClosedSections:  boolValue(cfg.RemoveClosedSections),
	}
}

func toPreferences(cfg *dto.PreferencesConfig) scorer.Preferences {
	if cfg == nil {
		return scorer.Preferences{}
	}
	return scorer.Preferences{
		MoreFreeDays:             boolValue(cfg.MoreFreeDays),
		LessBreaksBetweenClasses: boolValue(cfg.LessBreaksBetweenClasses),
		MoreOnlineClasses:        boolValue(cfg.MoreOnlineClasses),
	}
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

func toWireSchedules(schedules []models.Schedule) []map[string][]string {
	out := make([]map[string][]string, len(schedules))
	for i, s := range schedules {
		out[i] = map[string][]string(s)
	}
	return out
}
