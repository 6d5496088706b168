package migration

import (
	"context"

	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Tenant{},
		&entity.ActivationSchedule{},
		&entity.SpinEvent{},
	)
}
