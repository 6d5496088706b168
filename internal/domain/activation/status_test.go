package activation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_DynamicStatus(t *testing.T) {
	now := time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)
	past := now.Add(-3 * time.Hour)
	pastEnd := now.Add(-time.Hour)

	tests := []struct {
		name        string
		state       State
		hasSchedule bool
		want        Status
	}{
		{name: "permanent activation", state: State{IsActive: true}, want: StatusActive},
		{name: "active wins over schedules", state: State{IsActive: true}, hasSchedule: true, want: StatusActive},
		{name: "expired with schedule", state: State{IsActive: true, WindowStart: &past, WindowEnd: &pastEnd}, hasSchedule: true, want: StatusScheduled},
		{name: "inactive with schedule", state: State{}, hasSchedule: true, want: StatusScheduled},
		{name: "inactive", state: State{}, want: StatusInactive},
		{name: "expired without schedule", state: State{IsActive: true, WindowStart: &past, WindowEnd: &pastEnd}, want: StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DynamicStatus(tt.state, now, tt.hasSchedule))
		})
	}
}
