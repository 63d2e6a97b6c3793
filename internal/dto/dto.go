// Package dto defines the wire-level request/response shapes for schedule
// generation and their validation rules. These types never leak into the
// core pipeline packages; the Orchestrator translates between them and the
// internal models.
package dto

// FiltersConfig mirrors filter.Config at the wire boundary.
type FiltersConfig struct {
	RemoveDowntownClasses *bool   `json:"remove_downtown_classes,omitempty"`
	RemoveClassesBefore   *string `json:"remove_classes_before,omitempty" validate:"omitempty,len=4,numeric"`
	RemoveClassesAfter    *string `json:"remove_classes_after,omitempty" validate:"omitempty,len=4,numeric"`
	RemoveClosedSections  *bool   `json:"remove_closed_sections,omitempty"`
}

// PreferencesConfig mirrors scorer.Preferences at the wire boundary.
type PreferencesConfig struct {
	MoreFreeDays             *bool `json:"more_free_days,omitempty"`
	LessBreaksBetweenClasses *bool `json:"less_breaks_between_classes,omitempty"`
	MoreOnlineClasses        *bool `json:"more_online_classes,omitempty"`
}

// GenerateScheduleRequest is the request shape of spec section 6.
type GenerateScheduleRequest struct {
	Term             string             `json:"term" validate:"required"`
	CourseCodes      []string           `json:"course_codes" validate:"required,min=1,max=10,dive,required"`
	NumSchedules     int                `json:"num_schedules" validate:"omitempty,min=1"`
	TimeLimitSeconds *int               `json:"time_limit_seconds,omitempty" validate:"omitempty,min=1"`
	MaxSolutions     *int               `json:"max_solutions,omitempty" validate:"omitempty,min=1"`
	Filters          *FiltersConfig     `json:"filters,omitempty"`
	Preferences      *PreferencesConfig `json:"preferences,omitempty"`
	Solver           string             `json:"solver" validate:"omitempty,oneof=random cp"`
}

// Defaults fills in the zero-value fields spec section 6 assigns defaults
// to: num_schedules=3, solver="cp".
func (r *GenerateScheduleRequest) Defaults() {
	if r.NumSchedules == 0 {
		r.NumSchedules = 3
	}
	if r.Solver == "" {
		r.Solver = "cp"
	}
}

// GenerateScheduleResponse is the response shape of spec section 6: each
// element maps course code to its CRN tuple, ordered highest-scoring first
// when preferences were supplied, else by insertion order.
type GenerateScheduleResponse struct {
	Schedules []map[string][]string `json:"schedules"`
}
