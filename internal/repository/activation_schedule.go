package repository

import (
	"context"
	"time"

	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ActivationScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.ActivationSchedule) error
	Update(ctx context.Context, schedule *entity.ActivationSchedule) error
	GetByID(ctx context.Context, id string) (*entity.ActivationSchedule, error)
	GetByTenantID(ctx context.Context, tenantID string) ([]entity.ActivationSchedule, error)
	GetEnabled(ctx context.Context) ([]entity.ActivationSchedule, error)
	HasEnabled(ctx context.Context, tenantID string) (bool, error)
	UpdateLastActivation(ctx context.Context, id string, at time.Time) error
	ClaimActivation(ctx context.Context, id string, since, at time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}

type activationScheduleRepository struct{}

func NewActivationScheduleRepository() *activationScheduleRepository {
	return &activationScheduleRepository{}
}

func (r *activationScheduleRepository) Create(ctx context.Context, schedule *entity.ActivationSchedule) error {
	return xcontext.DB(ctx).Create(schedule).Error
}

// Update saves every configurable column of the schedule. The last
// activation is owned by UpdateLastActivation and ClaimActivation and left untouched.
func (r *activationScheduleRepository) Update(ctx context.Context, schedule *entity.ActivationSchedule) error {
	schedule.DurationHours = schedule.Window().DurationHours()
	tx := xcontext.DB(ctx).Model(schedule).
		Select("saturday", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday",
			"start_hour", "end_hour", "duration_hours", "is_enabled").
		Updates(schedule)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *activationScheduleRepository) GetByID(ctx context.Context, id string) (*entity.ActivationSchedule, error) {
	var result entity.ActivationSchedule
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *activationScheduleRepository) GetByTenantID(
	ctx context.Context, tenantID string,
) ([]entity.ActivationSchedule, error) {
	var result []entity.ActivationSchedule
	err := xcontext.DB(ctx).Where("tenant_id=?", tenantID).
		Order("start_hour ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetEnabled returns every enabled schedule, oldest first so that the order
// of evaluation within a tick is stable.
func (r *activationScheduleRepository) GetEnabled(ctx context.Context) ([]entity.ActivationSchedule, error) {
	var result []entity.ActivationSchedule
	err := xcontext.DB(ctx).Where("is_enabled=?", true).
		Order("created_at ASC").Order("id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activationScheduleRepository) HasEnabled(ctx context.Context, tenantID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ActivationSchedule{}).
		Where("tenant_id=? AND is_enabled=?", tenantID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *activationScheduleRepository) UpdateLastActivation(ctx context.Context, id string, at time.Time) error {
	tx := xcontext.DB(ctx).Model(&entity.ActivationSchedule{}).
		Where("id=?", id).
		UpdateColumn("last_activation_at", at.UTC())
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ClaimActivation sets the last activation to at unless the schedule was
// already activated at or after since. It returns false when another writer
// claimed it first. The row stays locked until the surrounding transaction
// ends.
func (r *activationScheduleRepository) ClaimActivation(
	ctx context.Context, id string, since, at time.Time,
) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.ActivationSchedule{}).
		Where("id=?", id).
		Where("(last_activation_at IS NULL OR last_activation_at < ?)", since.UTC()).
		UpdateColumn("last_activation_at", at.UTC())
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *activationScheduleRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.ActivationSchedule{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
