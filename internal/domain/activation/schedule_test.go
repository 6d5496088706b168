package activation

import (
	"testing"
	"time"

	"github.com/dawerha/backend/pkg/dateutil"
	"github.com/dawerha/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

var riyadh = dateutil.ReferenceLocation()

// saturday returns a wall-clock instant on Saturday 2025-01-04 in Riyadh.
func saturday(hour, min, sec int) time.Time {
	return time.Date(2025, 1, 4, hour, min, sec, 0, riyadh)
}

func ptr[T any](v T) *T {
	return &v
}

func Test_WeeklySchedule_Validate(t *testing.T) {
	s := WeeklySchedule{Days: NewDays(Monday), Window: TimeWindow{StartHour: 9, EndHour: 17}}
	require.NoError(t, s.Validate())

	s.Days = Days{}
	require.True(t, errorx.IsCode(s.Validate(), errorx.InvalidSchedule))

	s = WeeklySchedule{Days: NewDays(Monday), Window: TimeWindow{StartHour: 9, EndHour: 30}}
	require.True(t, errorx.IsCode(s.Validate(), errorx.InvalidSchedule))
}

func Test_WeeklySchedule_ShouldTriggerNow(t *testing.T) {
	base := WeeklySchedule{
		Days:    NewDays(Saturday),
		Window:  TimeWindow{StartHour: 9, EndHour: 17},
		Enabled: true,
	}

	tests := []struct {
		name   string
		modify func(*WeeklySchedule)
		now    time.Time
		want   bool
	}{
		{name: "exact instant", now: saturday(9, 0, 0), want: true},
		{name: "later in minute zero", now: saturday(9, 0, 45), want: true},
		{name: "minute one", now: saturday(9, 1, 0), want: false},
		{name: "hour before", now: saturday(8, 59, 59), want: false},
		{name: "inside window but not the edge", now: saturday(12, 0, 0), want: false},
		{name: "inactive day", now: saturday(9, 0, 0).AddDate(0, 0, 1), want: false},
		{
			name:   "disabled",
			modify: func(s *WeeklySchedule) { s.Enabled = false },
			now:    saturday(9, 0, 0),
			want:   false,
		},
		{
			name:   "already triggered this hour",
			modify: func(s *WeeklySchedule) { s.LastActivationAt = ptr(saturday(9, 0, 1)) },
			now:    saturday(9, 0, 30),
			want:   false,
		},
		{
			name:   "triggered at the same hour last week",
			modify: func(s *WeeklySchedule) { s.LastActivationAt = ptr(saturday(9, 0, 0).AddDate(0, 0, -7)) },
			now:    saturday(9, 0, 0),
			want:   true,
		},
		{
			name:   "no day selected never triggers",
			modify: func(s *WeeklySchedule) { s.Days = Days{} },
			now:    saturday(9, 0, 0),
			want:   false,
		},
		{
			name:   "out of range hour never triggers",
			modify: func(s *WeeklySchedule) { s.Window.EndHour = 25 },
			now:    saturday(9, 0, 0),
			want:   false,
		},
		{
			name: "evaluated from a UTC clock",
			now:  saturday(9, 0, 0).UTC(),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			if tt.modify != nil {
				tt.modify(&s)
			}

			require.Equal(t, tt.want, s.ShouldTriggerNow(tt.now))
		})
	}
}

func Test_WeeklySchedule_ShouldTriggerNow_Debounce(t *testing.T) {
	s := WeeklySchedule{
		Days:    EveryDay(),
		Window:  TimeWindow{StartHour: 9, EndHour: 17},
		Enabled: true,
	}

	triggers := map[string]int{}
	start := saturday(0, 0, 0)
	end := start.AddDate(0, 0, 3)
	for now := start; now.Before(end); now = now.Add(time.Second) {
		if s.ShouldTriggerNow(now) {
			triggers[now.Format("2006-01-02")]++
			s.LastActivationAt = ptr(now)
		}
	}

	require.Equal(t, map[string]int{
		"2025-01-04": 1,
		"2025-01-05": 1,
		"2025-01-06": 1,
	}, triggers)
}

func Test_WeeklySchedule_IsWithinWindow(t *testing.T) {
	overnight := WeeklySchedule{
		Days:    EveryDay(),
		Window:  TimeWindow{StartHour: 22, EndHour: 2},
		Enabled: true,
	}

	for minute := 0; minute < 24*60; minute++ {
		now := saturday(0, 0, 0).Add(time.Duration(minute) * time.Minute)
		hour := now.Hour()
		want := hour >= 22 || hour <= 2
		require.Equal(t, want, overnight.IsWithinWindow(now), "at %s", now.Format("15:04"))
	}

	require.True(t, overnight.IsWithinWindow(saturday(23, 30, 0)))
	require.True(t, overnight.IsWithinWindow(saturday(2, 59, 0)))
	require.False(t, overnight.IsWithinWindow(saturday(10, 0, 0)))

	day := WeeklySchedule{
		Days:    NewDays(Saturday),
		Window:  TimeWindow{StartHour: 9, EndHour: 17},
		Enabled: true,
	}
	require.True(t, day.IsWithinWindow(saturday(17, 59, 0)))
	require.False(t, day.IsWithinWindow(saturday(18, 0, 0)))
	require.False(t, day.IsWithinWindow(saturday(10, 0, 0).AddDate(0, 0, 1)))

	day.Enabled = false
	require.False(t, day.IsWithinWindow(saturday(10, 0, 0)))
}

func Test_WeeklySchedule_CanTriggerManually(t *testing.T) {
	day := WeeklySchedule{
		Days:    NewDays(Saturday),
		Window:  TimeWindow{StartHour: 10, EndHour: 11},
		Enabled: true,
	}
	overnight := WeeklySchedule{
		Days:    NewDays(Saturday),
		Window:  TimeWindow{StartHour: 22, EndHour: 2},
		Enabled: true,
	}
	disabled := day
	disabled.Enabled = false

	tests := []struct {
		name     string
		schedule WeeklySchedule
		now      time.Time
		want     ManualTrigger
	}{
		{
			name:     "disabled",
			schedule: disabled,
			now:      saturday(10, 30, 0),
			want:     ManualTrigger{Reason: ReasonDisabled},
		},
		{
			name:     "inactive day",
			schedule: day,
			now:      saturday(10, 30, 0).AddDate(0, 0, 2),
			want:     ManualTrigger{Reason: ReasonInactiveDay},
		},
		{
			name:     "exact scheduled instant",
			schedule: day,
			now:      saturday(10, 0, 20),
			want:     ManualTrigger{AtScheduledInstant: true, Reason: ReasonScheduledInstant},
		},
		{
			name:     "before the window",
			schedule: day,
			now:      saturday(9, 59, 0),
			want:     ManualTrigger{Allowed: true},
		},
		{
			name:     "inside the window",
			schedule: day,
			now:      saturday(11, 15, 0),
			want:     ManualTrigger{Allowed: true},
		},
		{
			name:     "after the window",
			schedule: day,
			now:      saturday(12, 0, 0),
			want:     ManualTrigger{Reason: ReasonOutsideWindow},
		},
		{
			name:     "overnight late evening",
			schedule: overnight,
			now:      saturday(23, 0, 0),
			want:     ManualTrigger{Allowed: true},
		},
		{
			name:     "overnight early morning",
			schedule: overnight,
			now:      saturday(1, 30, 0),
			want:     ManualTrigger{Allowed: true},
		},
		{
			name:     "overnight gap",
			schedule: overnight,
			now:      saturday(12, 0, 0),
			want:     ManualTrigger{Reason: ReasonOutsideWindow},
		},
		{
			name:     "invalid configuration",
			schedule: WeeklySchedule{Enabled: true, Window: TimeWindow{StartHour: 10, EndHour: 11}},
			now:      saturday(10, 30, 0),
			want:     ManualTrigger{Reason: ReasonInvalidConfig},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.schedule.CanTriggerManually(tt.now))
		})
	}
}

func Test_WeeklySchedule_Activation(t *testing.T) {
	s := WeeklySchedule{Window: TimeWindow{StartHour: 22, EndHour: 2}}
	a := s.Activation()

	require.Equal(t, 4, a.DurationHours)
	require.Equal(t, 22, *a.ScheduledStartHour)
	require.Equal(t, 2, *a.ScheduledEndHour)
}
