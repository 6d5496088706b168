package model

import "time"

type ActivationSchedule struct {
	ID               string     `json:"id"`
	TenantID         string     `json:"tenant_id"`
	Days             []string   `json:"days"`
	StartHour        int        `json:"start_hour"`
	EndHour          int        `json:"end_hour"`
	DurationHours    int        `json:"duration_hours"`
	IsEnabled        bool       `json:"is_enabled"`
	LastActivationAt *time.Time `json:"last_activation_at"`
}

type CreateScheduleRequest struct {
	TenantID  string   `json:"tenant_id"`
	Days      []string `json:"days"`
	StartHour int      `json:"start_hour"`
	EndHour   int      `json:"end_hour"`
	IsEnabled bool     `json:"is_enabled"`
}

type CreateScheduleResponse struct {
	Schedule ActivationSchedule `json:"schedule"`
}

type UpdateScheduleRequest struct {
	ScheduleID string   `json:"schedule_id"`
	Days       []string `json:"days"`
	StartHour  int      `json:"start_hour"`
	EndHour    int      `json:"end_hour"`
	IsEnabled  bool     `json:"is_enabled"`
}

type UpdateScheduleResponse struct {
	Schedule ActivationSchedule `json:"schedule"`
}

type DeleteScheduleRequest struct {
	ScheduleID string `json:"schedule_id"`
}

type DeleteScheduleResponse struct{}

type GetScheduleStatusRequest struct {
	ScheduleID string `json:"schedule_id"`
}

type GetScheduleStatusResponse struct {
	ShouldTriggerNow        bool   `json:"should_trigger_now"`
	IsWithinWindow          bool   `json:"is_within_window"`
	CanTriggerManually      bool   `json:"can_trigger_manually"`
	AtScheduledInstant      bool   `json:"at_scheduled_instant"`
	Reason                  string `json:"reason"`
	DurationHours           int    `json:"duration_hours"`
	TenantEffectivelyActive bool   `json:"tenant_effectively_active"`
}

type TriggerScheduleRequest struct {
	ScheduleID string `json:"schedule_id"`
}

type TriggerScheduleResponse struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}
