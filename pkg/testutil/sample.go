package testutil

import (
	"context"
	"reflect"

	"github.com/dawerha/backend/internal/domain/activation"
	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/internal/repository"
	"github.com/google/uuid"
)

// SampleTenant creates an approved company in the database of ctx. The sample
// can be overwritten by non-zero fields of init.
func SampleTenant(ctx context.Context, init *entity.Tenant) (entity.Tenant, error) {
	sample := &entity.Tenant{
		Base:        entity.Base{ID: uuid.NewString()},
		Kind:        entity.TenantCompany,
		Name:        uuid.NewString(),
		Slug:        uuid.NewString(),
		Status:      entity.TenantApproved,
		ActiveHours: activation.DefaultActiveHours,
		Prizes:      entity.Array[string]{"Coffee", "Discount", "Try again"},
		Percentages: entity.Array[int]{20, 30, 50},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewTenantRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

// SampleSchedule creates a schedule for tenantID. Days, hours and the enabled
// flag come from init only.
func SampleSchedule(ctx context.Context, tenantID string, init *entity.ActivationSchedule) (entity.ActivationSchedule, error) {
	sample := &entity.ActivationSchedule{
		Base:     entity.Base{ID: uuid.NewString()},
		TenantID: tenantID,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewActivationScheduleRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
