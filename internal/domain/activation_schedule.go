package domain

import (
	"context"
	"errors"
	"time"

	"github.com/dawerha/backend/internal/common"
	"github.com/dawerha/backend/internal/domain/activation"
	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/internal/model"
	"github.com/dawerha/backend/internal/repository"
	"github.com/dawerha/backend/pkg/errorx"
	"github.com/dawerha/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivationScheduleDomain interface {
	Create(context.Context, *model.CreateScheduleRequest) (*model.CreateScheduleResponse, error)
	Update(context.Context, *model.UpdateScheduleRequest) (*model.UpdateScheduleResponse, error)
	Delete(context.Context, *model.DeleteScheduleRequest) (*model.DeleteScheduleResponse, error)
	GetStatus(context.Context, *model.GetScheduleStatusRequest) (*model.GetScheduleStatusResponse, error)
	Trigger(context.Context, *model.TriggerScheduleRequest) (*model.TriggerScheduleResponse, error)
}

type activationScheduleDomain struct {
	tenantRepo   repository.TenantRepository
	scheduleRepo repository.ActivationScheduleRepository
	now          func() time.Time
}

func NewActivationScheduleDomain(
	tenantRepo repository.TenantRepository,
	scheduleRepo repository.ActivationScheduleRepository,
) *activationScheduleDomain {
	return &activationScheduleDomain{
		tenantRepo:   tenantRepo,
		scheduleRepo: scheduleRepo,
		now:          time.Now,
	}
}

func (d *activationScheduleDomain) Create(
	ctx context.Context, req *model.CreateScheduleRequest,
) (*model.CreateScheduleResponse, error) {
	if _, err := d.tenantRepo.GetByID(ctx, req.TenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tenant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tenant: %v", err)
		return nil, errorx.Unknown
	}

	schedule := &entity.ActivationSchedule{
		Base:      entity.Base{ID: uuid.NewString()},
		TenantID:  req.TenantID,
		StartHour: req.StartHour,
		EndHour:   req.EndHour,
		IsEnabled: req.IsEnabled,
	}

	if err := applyScheduleConfig(schedule, req.Days, req.StartHour, req.EndHour); err != nil {
		return nil, err
	}

	if err := d.scheduleRepo.Create(ctx, schedule); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create schedule: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateScheduleResponse{Schedule: convertActivationSchedule(schedule)}, nil
}

func (d *activationScheduleDomain) Update(
	ctx context.Context, req *model.UpdateScheduleRequest,
) (*model.UpdateScheduleResponse, error) {
	schedule, err := d.getSchedule(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}

	if err := applyScheduleConfig(schedule, req.Days, req.StartHour, req.EndHour); err != nil {
		return nil, err
	}
	schedule.IsEnabled = req.IsEnabled

	if err := d.scheduleRepo.Update(ctx, schedule); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update schedule: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateScheduleResponse{Schedule: convertActivationSchedule(schedule)}, nil
}

func (d *activationScheduleDomain) Delete(
	ctx context.Context, req *model.DeleteScheduleRequest,
) (*model.DeleteScheduleResponse, error) {
	if err := d.scheduleRepo.Delete(ctx, req.ScheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found schedule")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete schedule: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteScheduleResponse{}, nil
}

func (d *activationScheduleDomain) GetStatus(
	ctx context.Context, req *model.GetScheduleStatusRequest,
) (*model.GetScheduleStatusResponse, error) {
	schedule, err := d.getSchedule(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}

	tenant, err := d.tenantRepo.GetByID(ctx, schedule.TenantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tenant of schedule %s: %v", schedule.ID, err)
		return nil, errorx.Unknown
	}

	now := d.now()
	weekly := schedule.WeeklySchedule(referenceLocation(ctx))
	manual := weekly.CanTriggerManually(now)

	return &model.GetScheduleStatusResponse{
		ShouldTriggerNow:        weekly.ShouldTriggerNow(now),
		IsWithinWindow:          weekly.IsWithinWindow(now),
		CanTriggerManually:      manual.Allowed,
		AtScheduledInstant:      manual.AtScheduledInstant,
		Reason:                  manual.Reason,
		DurationHours:           weekly.DurationHours(),
		TenantEffectivelyActive: tenant.ActivationState().IsEffectivelyActive(now),
	}, nil
}

// Trigger activates the schedule's tenant on behalf of an operator.
func (d *activationScheduleDomain) Trigger(
	ctx context.Context, req *model.TriggerScheduleRequest,
) (*model.TriggerScheduleResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	schedule, err := d.getSchedule(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}

	now := d.now()
	loc := referenceLocation(ctx)
	weekly := schedule.WeeklySchedule(loc)

	manual := weekly.CanTriggerManually(now)
	if manual.AtScheduledInstant {
		return nil, errorx.New(errorx.Unavailable, "The automatic activation is happening now, please wait")
	}

	if !manual.Allowed {
		return nil, errorx.New(errorx.BadRequest, "Cannot trigger schedule: %s", manual.Reason)
	}

	tenant, err := d.tenantRepo.GetByID(ctx, schedule.TenantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tenant of schedule %s: %v", schedule.ID, err)
		return nil, errorx.Unknown
	}

	state := tenant.ActivationState()
	state.ManualActivate(weekly.Activation(), now, loc)
	tenant.SetActivationState(state)

	if err := d.tenantRepo.UpdateActivation(ctx, tenant.ID, tenant.Activation()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update tenant activation: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.scheduleRepo.UpdateLastActivation(ctx, schedule.ID, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update last activation: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit schedule trigger: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.SchedulerActivationsTotal].WithLabelValues("manual").Inc()
	xcontext.Logger(ctx).Infof("Tenant %s activated manually from schedule %s until %s",
		tenant.ID, schedule.ID, state.WindowEnd.Format(time.RFC3339))

	return &model.TriggerScheduleResponse{
		WindowStart: *state.WindowStart,
		WindowEnd:   *state.WindowEnd,
	}, nil
}

func (d *activationScheduleDomain) getSchedule(ctx context.Context, id string) (*entity.ActivationSchedule, error) {
	schedule, err := d.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found schedule")
		}

		xcontext.Logger(ctx).Errorf("Cannot get schedule: %v", err)
		return nil, errorx.Unknown
	}

	return schedule, nil
}

// applyScheduleConfig validates the configuration before it reaches the
// schedule, so stored schedules are always valid.
func applyScheduleConfig(schedule *entity.ActivationSchedule, rawDays []string, startHour, endHour int) error {
	days, err := parseDays(rawDays)
	if err != nil {
		return err
	}

	weekly := activation.WeeklySchedule{
		Days:   days,
		Window: activation.TimeWindow{StartHour: startHour, EndHour: endHour},
	}
	if err := weekly.Validate(); err != nil {
		return err
	}

	schedule.SetDays(days)
	schedule.StartHour = startHour
	schedule.EndHour = endHour
	schedule.DurationHours = weekly.DurationHours()
	return nil
}
