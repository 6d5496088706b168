package activation

import "github.com/dawerha/backend/pkg/errorx"

// TimeWindow is a daily range of wall-clock hours. When StartHour is after
// EndHour the range wraps past midnight.
type TimeWindow struct {
	StartHour int
	EndHour   int
}

func (w TimeWindow) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 {
		return errorx.New(errorx.InvalidSchedule, "Start hour must be between 0 and 23")
	}

	if w.EndHour < 0 || w.EndHour > 23 {
		return errorx.New(errorx.InvalidSchedule, "End hour must be between 0 and 23")
	}

	return nil
}

func (w TimeWindow) CrossesMidnight() bool {
	return w.StartHour > w.EndHour
}

// DurationHours is the length of the window, never less than one hour.
func (w TimeWindow) DurationHours() int {
	if w.CrossesMidnight() {
		return (24 - w.StartHour) + w.EndHour
	}

	if d := w.EndHour - w.StartHour; d > 0 {
		return d
	}

	return 1
}

// Contains reports whether hour lies in the window. The end hour is included
// as a whole.
func (w TimeWindow) Contains(hour int) bool {
	if w.CrossesMidnight() {
		return hour >= w.StartHour || hour <= w.EndHour
	}

	return w.StartHour <= hour && hour <= w.EndHour
}
