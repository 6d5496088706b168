package scheduler

import "time"

type TickReport struct {
	At     time.Time
	DryRun bool

	// Throttled is set when the tick was not run at all.
	Throttled bool

	Evaluated int
	Activated []Activated
	Skipped   []Skip
	Failures  []Failure
}

type Activated struct {
	ScheduleID  string
	TenantID    string
	WindowStart time.Time
	WindowEnd   time.Time
}

const (
	SkipTenantClaimed    = "tenant already activated in this tick"
	SkipAlreadyActivated = "schedule already activated this hour"
)

// Skip is a schedule that triggered but was not activated, either because
// another schedule of the same tenant won this tick or because another tick
// activated it first.
type Skip struct {
	ScheduleID string
	TenantID   string
	Reason     string
}

type Failure struct {
	ScheduleID string
	TenantID   string
	Err        error
}
