package activation

import (
	"time"

	"github.com/dawerha/backend/pkg/dateutil"
	"github.com/dawerha/backend/pkg/errorx"
)

const (
	ReasonDisabled         = "schedule is disabled"
	ReasonInactiveDay      = "today is not an activation day"
	ReasonInvalidConfig    = "schedule configuration is invalid"
	ReasonScheduledInstant = "this is the exact scheduled instant, wait for the automatic activation"
	ReasonOutsideWindow    = "outside activation window"
)

// WeeklySchedule activates its tenant on the selected weekdays at the start
// of Window.
type WeeklySchedule struct {
	Days             Days
	Window           TimeWindow
	Enabled          bool
	LastActivationAt *time.Time

	// Location defaults to the reference timezone.
	Location *time.Location
}

// ManualTrigger is the advice given to an operator who wants to activate a
// tenant from one of its schedules.
type ManualTrigger struct {
	Allowed bool

	// AtScheduledInstant is set when now is the trigger edge itself. The
	// operator should let the automatic activation happen instead.
	AtScheduledInstant bool

	Reason string
}

func (s WeeklySchedule) Validate() error {
	if !s.Days.Any() {
		return errorx.New(errorx.InvalidSchedule, "At least one day must be selected")
	}

	return s.Window.Validate()
}

func (s WeeklySchedule) DurationHours() int {
	return s.Window.DurationHours()
}

func (s WeeklySchedule) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}

	return dateutil.ReferenceLocation()
}

// activeOn is the gate shared by every predicate. Invalid configurations
// never pass it.
func (s WeeklySchedule) activeOn(local time.Time) bool {
	return s.Enabled && s.Validate() == nil && s.Days.Has(WeekdayOf(local))
}

// ShouldTriggerNow reports whether now is the trigger edge of the schedule:
// an active day, minute 0 of the start hour, and no activation recorded in
// that same hour. It is true at most once per scheduled day however often it
// is polled, so callers must poll at least once a minute.
func (s WeeklySchedule) ShouldTriggerNow(now time.Time) bool {
	loc := s.location()
	local := now.In(loc)

	if !s.activeOn(local) {
		return false
	}

	if local.Hour() != s.Window.StartHour || local.Minute() != 0 {
		return false
	}

	if s.LastActivationAt != nil && dateutil.SameHour(*s.LastActivationAt, now, loc) {
		return false
	}

	return true
}

// IsWithinWindow reports whether now is inside the window on an active day,
// end hour included.
func (s WeeklySchedule) IsWithinWindow(now time.Time) bool {
	local := now.In(s.location())
	if !s.activeOn(local) {
		return false
	}

	return s.Window.Contains(local.Hour())
}

func (s WeeklySchedule) CanTriggerManually(now time.Time) ManualTrigger {
	local := now.In(s.location())
	hour := local.Hour()

	if !s.Enabled {
		return ManualTrigger{Reason: ReasonDisabled}
	}

	if s.Validate() != nil {
		return ManualTrigger{Reason: ReasonInvalidConfig}
	}

	if !s.Days.Has(WeekdayOf(local)) {
		return ManualTrigger{Reason: ReasonInactiveDay}
	}

	if hour == s.Window.StartHour && local.Minute() == 0 {
		return ManualTrigger{AtScheduledInstant: true, Reason: ReasonScheduledInstant}
	}

	if s.Window.CrossesMidnight() {
		if hour < s.Window.StartHour && hour > s.Window.EndHour {
			return ManualTrigger{Reason: ReasonOutsideWindow}
		}

		return ManualTrigger{Allowed: true}
	}

	// Before the window opens the activation is prepared ahead of time.
	if hour < s.Window.StartHour || s.Window.Contains(hour) {
		return ManualTrigger{Allowed: true}
	}

	return ManualTrigger{Reason: ReasonOutsideWindow}
}

// Activation returns the activation a trigger of this schedule applies.
func (s WeeklySchedule) Activation() Activation {
	start, end := s.Window.StartHour, s.Window.EndHour
	return Activation{
		DurationHours:      s.DurationHours(),
		ScheduledStartHour: &start,
		ScheduledEndHour:   &end,
	}
}
