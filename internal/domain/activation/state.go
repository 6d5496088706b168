package activation

import (
	"time"

	"github.com/dawerha/backend/pkg/dateutil"
)

const (
	DefaultActiveHours = 1
	MaxActiveHours     = 168
)

// State is the activation state a tenant owns. With both window bounds nil
// an active tenant stays active until deactivated.
type State struct {
	IsActive    bool
	WindowStart *time.Time
	WindowEnd   *time.Time

	// ActiveHours is the duration used when only WindowStart is set, and the
	// default duration of a manual activation.
	ActiveHours int
}

// Activation describes one activation request. Without a scheduled start
// hour the window opens now and lasts DurationHours.
type Activation struct {
	DurationHours      int
	ScheduledStartHour *int
	ScheduledEndHour   *int
}

func (s State) activeHours() int {
	if s.ActiveHours <= 0 {
		return DefaultActiveHours
	}

	return s.ActiveHours
}

func (s State) IsEffectivelyActive(now time.Time) bool {
	if !s.IsActive {
		return false
	}

	if s.WindowStart == nil {
		return true
	}

	end := s.WindowStart.Add(time.Duration(s.activeHours()) * time.Hour)
	if s.WindowEnd != nil {
		end = *s.WindowEnd
	}

	return !now.Before(*s.WindowStart) && !now.After(end)
}

// CalculatedActiveHours is the length of the current activation in whole
// hours. A permanent activation counts as 24.
func (s State) CalculatedActiveHours() int {
	switch {
	case !s.IsActive:
		return 0
	case s.WindowStart == nil && s.WindowEnd == nil:
		return 24
	case s.WindowStart != nil && s.WindowEnd != nil:
		return int(s.WindowEnd.Sub(*s.WindowStart) / time.Hour)
	default:
		return s.activeHours()
	}
}

func (s *State) ManualActivate(a Activation, now time.Time, loc *time.Location) {
	duration := a.DurationHours
	if duration <= 0 {
		duration = s.activeHours()
	}

	var start, end time.Time
	if a.ScheduledStartHour == nil {
		start, end = now, now.Add(time.Duration(duration)*time.Hour)
	} else {
		start, end = ComputeWindow(now, loc, *a.ScheduledStartHour, a.ScheduledEndHour, duration)
	}

	s.IsActive = true
	s.WindowStart = &start
	s.WindowEnd = &end
}

func (s *State) ManualDeactivate() {
	s.IsActive = false
	s.WindowStart = nil
	s.WindowEnd = nil
}

// ComputeWindow returns the activation window for a schedule starting at
// startHour, evaluated at now in loc.
//
// The start is the top of the current hour when startHour is the current
// hour, the scheduled instant when it is still ahead today, and now
// otherwise. The end is endHour:00 on the start's date, moved to the next day
// when not after the start. Without endHour the window lasts durationHours.
func ComputeWindow(
	now time.Time, loc *time.Location, startHour int, endHour *int, durationHours int,
) (time.Time, time.Time) {
	if loc == nil {
		loc = dateutil.ReferenceLocation()
	}

	local := now.In(loc)
	scheduled := dateutil.AtHour(now, loc, startHour)

	// In the early-morning tail of a window that began yesterday, today's
	// start is not the one that applies.
	inOvernightTail := endHour != nil && startHour > *endHour && local.Hour() <= *endHour

	var start time.Time
	switch {
	case local.Hour() == startHour:
		start = scheduled
	case scheduled.After(now) && !inOvernightTail:
		start = scheduled
	default:
		start = now
	}

	if endHour == nil {
		return start, start.Add(time.Duration(durationHours) * time.Hour)
	}

	end := dateutil.AtHour(start, loc, *endHour)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return start, end
}
