package domain

import (
	"time"

	"github.com/dawerha/backend/internal/domain/activation"
	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/internal/model"
)

func convertTenant(tenant *entity.Tenant, status activation.Status, now time.Time) model.Tenant {
	return model.Tenant{
		ID:                  tenant.ID,
		Kind:                string(tenant.Kind),
		Name:                tenant.Name,
		Slug:                tenant.Slug,
		Status:              string(tenant.Status),
		DynamicStatus:       string(status),
		IsActive:            tenant.IsActive,
		IsEffectivelyActive: tenant.ActivationState().IsEffectivelyActive(now),
		ActiveHours:         tenant.ActiveHours,
		ActivationStartTime: tenant.ActivationStartTime,
		ActivationEndTime:   tenant.ActivationEndTime,
		Prizes:              tenant.Prizes,
		Percentages:         tenant.Percentages,
	}
}

func convertActivationSchedule(schedule *entity.ActivationSchedule) model.ActivationSchedule {
	days := []string{}
	for _, d := range schedule.Days().List() {
		days = append(days, d.String())
	}

	var lastActivationAt *time.Time
	if schedule.LastActivationAt.Valid {
		lastActivationAt = &schedule.LastActivationAt.Time
	}

	return model.ActivationSchedule{
		ID:               schedule.ID,
		TenantID:         schedule.TenantID,
		Days:             days,
		StartHour:        schedule.StartHour,
		EndHour:          schedule.EndHour,
		DurationHours:    schedule.DurationHours,
		IsEnabled:        schedule.IsEnabled,
		LastActivationAt: lastActivationAt,
	}
}
