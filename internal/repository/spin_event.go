package repository

import (
	"context"

	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/pkg/xcontext"
)

type PrizeCount struct {
	Prize string
	Count int64
}

type SpinEventRepository interface {
	Create(ctx context.Context, event *entity.SpinEvent) error
	CountByPrize(ctx context.Context, tenantID string) ([]PrizeCount, error)
}

type spinEventRepository struct{}

func NewSpinEventRepository() *spinEventRepository {
	return &spinEventRepository{}
}

func (r *spinEventRepository) Create(ctx context.Context, event *entity.SpinEvent) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *spinEventRepository) CountByPrize(ctx context.Context, tenantID string) ([]PrizeCount, error) {
	var result []PrizeCount
	err := xcontext.DB(ctx).Model(&entity.SpinEvent{}).
		Select("prize, COUNT(*) AS count").
		Where("tenant_id=?", tenantID).
		Group("prize").
		Order("count DESC").Order("prize ASC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
