// Package scorer computes a deterministic, side-effect-free preference score
// for a generated Schedule, used to rank candidates when preferences are
// supplied.
package scorer

import (
	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/timebitmap"
)

const onlineCampus = "OT-Online"

// Preferences is the explicit configuration record for the recognized
// scoring preferences. Unknown preference keys never reach this type; the
// wire-level decoder ignores them to stay forward-compatible.
type Preferences struct {
	MoreFreeDays             bool
	LessBreaksBetweenClasses bool
	MoreOnlineClasses        bool
}

// Score computes the scalar preference score for a schedule. Higher is
// better; callers rank candidates by descending score.
func Score(schedule models.Schedule, prefs Preferences, sections map[string]*models.Section) float64 {
	var score float64

	if prefs.MoreFreeDays {
		score -= float64(CountDaysWithScheduledClasses(schedule, sections))
	}
	if prefs.LessBreaksBetweenClasses {
		score -= float64(CountBreaksBetweenClasses(schedule, sections))
	}
	if prefs.MoreOnlineClasses {
		score += float64(CountOnlineClasses(schedule, sections))
	}

	return score
}

// CountDaysWithScheduledClasses returns the number of distinct weekdays on
// which the schedule has at least one class.
func CountDaysWithScheduledClasses(schedule models.Schedule, sections map[string]*models.Section) int {
	bitmap := scheduleBitmap(schedule, sections)

	days := 0
	for _, day := range timebitmap.Days {
		span, err := timebitmap.DaySpan(day)
		if err != nil {
			continue
		}
		if timebitmap.Overlaps(bitmap, span) {
			days++
		}
	}
	return days
}

// CountBreaksBetweenClasses sums, across all seven days, the number of idle
// 20-minute cells strictly between the first and last class of that day.
func CountBreaksBetweenClasses(schedule models.Schedule, sections map[string]*models.Section) int {
	bitmap := scheduleBitmap(schedule, sections)

	total := 0
	for _, gaps := range timebitmap.CountIdleGapsPerDay(bitmap) {
		total += gaps
	}
	return total
}

// CountOnlineClasses counts sections across the whole schedule whose campus
// is the online campus.
func CountOnlineClasses(schedule models.Schedule, sections map[string]*models.Section) int {
	count := 0
	for _, crns := range schedule {
		for _, crn := range crns {
			if section, ok := sections[crn]; ok && section.CampusDescription == onlineCampus {
				count++
			}
		}
	}
	return count
}

func scheduleBitmap(schedule models.Schedule, sections map[string]*models.Section) timebitmap.TimeBitmap {
	bitmap := timebitmap.Empty()
	for _, crns := range schedule {
		for _, crn := range crns {
			if section, ok := sections[crn]; ok {
				bitmap = timebitmap.Union(bitmap, section.TimeBitmap())
			}
		}
	}
	return bitmap
}
