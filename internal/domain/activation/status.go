package activation

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusScheduled Status = "scheduled"
	StatusInactive  Status = "inactive"
	StatusPending   Status = "pending"
)

// DynamicStatus summarises a tenant for listing. An effective activation wins
// over enabled schedules, which win over the stored flag.
func DynamicStatus(s State, now time.Time, hasEnabledSchedule bool) Status {
	switch {
	case s.IsEffectivelyActive(now):
		return StatusActive
	case hasEnabledSchedule:
		return StatusScheduled
	case !s.IsActive:
		return StatusInactive
	default:
		// Flagged active but outside its window.
		return StatusPending
	}
}
