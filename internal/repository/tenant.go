package repository

import (
	"context"
	"time"

	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/pkg/xcontext"
	"github.com/fatih/structs"
	"gorm.io/gorm"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	UpdateActivation(ctx context.Context, id string, data entity.TenantActivation) error
	UpdateStatus(ctx context.Context, id string, status entity.TenantStatus, approvedAt *time.Time) error
	UpdatePrizes(ctx context.Context, id string, prizes []string, percentages []int) error
}

type tenantRepository struct{}

func NewTenantRepository() *tenantRepository {
	return &tenantRepository{}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	return xcontext.DB(ctx).Create(tenant).Error
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	var result entity.Tenant
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	var result entity.Tenant
	if err := xcontext.DB(ctx).Take(&result, "slug=?", slug).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateActivation writes every activation column, including zero values and
// NULL window bounds.
func (r *tenantRepository) UpdateActivation(ctx context.Context, id string, data entity.TenantActivation) error {
	tx := xcontext.DB(ctx).Model(&entity.Tenant{}).
		Where("id=?", id).
		Updates(structs.Map(data))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *tenantRepository) UpdateStatus(
	ctx context.Context, id string, status entity.TenantStatus, approvedAt *time.Time,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Tenant{}).
		Where("id=?", id).
		Updates(map[string]any{
			"status":      status,
			"approved_at": approvedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *tenantRepository) UpdatePrizes(ctx context.Context, id string, prizes []string, percentages []int) error {
	tx := xcontext.DB(ctx).Model(&entity.Tenant{}).
		Where("id=?", id).
		Updates(map[string]any{
			"prizes":      entity.Array[string](prizes),
			"percentages": entity.Array[int](percentages),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
