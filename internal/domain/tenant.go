package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dawerha/backend/internal/common"
	"github.com/dawerha/backend/internal/domain/activation"
	"github.com/dawerha/backend/internal/domain/prize"
	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/internal/model"
	"github.com/dawerha/backend/internal/repository"
	"github.com/dawerha/backend/pkg/enum"
	"github.com/dawerha/backend/pkg/errorx"
	"github.com/dawerha/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantDomain interface {
	Create(context.Context, *model.CreateTenantRequest) (*model.CreateTenantResponse, error)
	Get(context.Context, *model.GetTenantRequest) (*model.GetTenantResponse, error)
	Activate(context.Context, *model.ActivateTenantRequest) (*model.ActivateTenantResponse, error)
	Deactivate(context.Context, *model.DeactivateTenantRequest) (*model.DeactivateTenantResponse, error)
	Approve(context.Context, *model.ReviewTenantRequest) (*model.ReviewTenantResponse, error)
	Reject(context.Context, *model.ReviewTenantRequest) (*model.ReviewTenantResponse, error)
	UpdatePrizes(context.Context, *model.UpdatePrizesRequest) (*model.UpdatePrizesResponse, error)
}

type tenantDomain struct {
	tenantRepo   repository.TenantRepository
	scheduleRepo repository.ActivationScheduleRepository
	now          func() time.Time
}

func NewTenantDomain(
	tenantRepo repository.TenantRepository,
	scheduleRepo repository.ActivationScheduleRepository,
) *tenantDomain {
	return &tenantDomain{
		tenantRepo:   tenantRepo,
		scheduleRepo: scheduleRepo,
		now:          time.Now,
	}
}

func (d *tenantDomain) Create(
	ctx context.Context, req *model.CreateTenantRequest,
) (*model.CreateTenantResponse, error) {
	kind, err := enum.ToEnum[entity.TenantKind](req.Kind)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid tenant kind: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid tenant kind")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errorx.New(errorx.BadRequest, "Name is required")
	}

	if err := checkTenantSlug(req.Slug); err != nil {
		return nil, err
	}

	activeHours := req.ActiveHours
	if activeHours == 0 {
		activeHours = activation.DefaultActiveHours
	}

	if err := checkActiveHours(activeHours); err != nil {
		return nil, err
	}

	tenant := &entity.Tenant{
		Base:        entity.Base{ID: uuid.NewString()},
		Kind:        kind,
		Name:        name,
		Slug:        req.Slug,
		Status:      entity.TenantPending,
		ActiveHours: activeHours,
	}

	if len(req.Prizes) > 0 {
		prizes, percentages, err := preparePrizes(kind, req.Prizes, req.Percentages)
		if err != nil {
			return nil, err
		}

		tenant.Prizes = prizes
		tenant.Percentages = percentages
	}

	if _, err := d.tenantRepo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Slug is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get tenant by slug: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.tenantRepo.Create(ctx, tenant); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create tenant: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTenantResponse{ID: tenant.ID}, nil
}

func (d *tenantDomain) Get(
	ctx context.Context, req *model.GetTenantRequest,
) (*model.GetTenantResponse, error) {
	tenant, err := d.getTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	hasEnabled, err := d.scheduleRepo.HasEnabled(ctx, tenant.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check enabled schedules: %v", err)
		return nil, errorx.Unknown
	}

	now := d.now()
	status := activation.DynamicStatus(tenant.ActivationState(), now, hasEnabled)
	return &model.GetTenantResponse{Tenant: convertTenant(tenant, status, now)}, nil
}

func (d *tenantDomain) Activate(
	ctx context.Context, req *model.ActivateTenantRequest,
) (*model.ActivateTenantResponse, error) {
	if req.Hours != 0 {
		if err := checkActiveHours(req.Hours); err != nil {
			return nil, err
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	tenant, err := d.getTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	state := tenant.ActivationState()
	state.ManualActivate(activation.Activation{DurationHours: req.Hours}, d.now(), referenceLocation(ctx))
	tenant.SetActivationState(state)

	if err := d.tenantRepo.UpdateActivation(ctx, tenant.ID, tenant.Activation()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update tenant activation: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit tenant activation: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.TenantManualChangesTotal].WithLabelValues("activate").Inc()
	xcontext.Logger(ctx).Infof("Tenant %s activated until %s", tenant.ID, state.WindowEnd.Format(time.RFC3339))

	return &model.ActivateTenantResponse{
		WindowStart: *state.WindowStart,
		WindowEnd:   *state.WindowEnd,
	}, nil
}

func (d *tenantDomain) Deactivate(
	ctx context.Context, req *model.DeactivateTenantRequest,
) (*model.DeactivateTenantResponse, error) {
	tenant, err := d.getTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	state := tenant.ActivationState()
	state.ManualDeactivate()
	tenant.SetActivationState(state)

	if err := d.tenantRepo.UpdateActivation(ctx, tenant.ID, tenant.Activation()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update tenant activation: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.TenantManualChangesTotal].WithLabelValues("deactivate").Inc()
	return &model.DeactivateTenantResponse{}, nil
}

// Approve activates the tenant permanently.
func (d *tenantDomain) Approve(
	ctx context.Context, req *model.ReviewTenantRequest,
) (*model.ReviewTenantResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	tenant, err := d.getTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	now := d.now()
	if err := d.tenantRepo.UpdateStatus(ctx, tenant.ID, entity.TenantApproved, &now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot approve tenant: %v", err)
		return nil, errorx.Unknown
	}

	err = d.tenantRepo.UpdateActivation(ctx, tenant.ID, entity.TenantActivation{IsActive: true})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot activate approved tenant: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit tenant approval: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReviewTenantResponse{}, nil
}

func (d *tenantDomain) Reject(
	ctx context.Context, req *model.ReviewTenantRequest,
) (*model.ReviewTenantResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	tenant, err := d.getTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	if err := d.tenantRepo.UpdateStatus(ctx, tenant.ID, entity.TenantRejected, nil); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reject tenant: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.tenantRepo.UpdateActivation(ctx, tenant.ID, entity.TenantActivation{}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deactivate rejected tenant: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit tenant rejection: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReviewTenantResponse{}, nil
}

func (d *tenantDomain) UpdatePrizes(
	ctx context.Context, req *model.UpdatePrizesRequest,
) (*model.UpdatePrizesResponse, error) {
	tenant, err := d.getTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	prizes, percentages, err := preparePrizes(tenant.Kind, req.Prizes, req.Percentages)
	if err != nil {
		return nil, err
	}

	if err := d.tenantRepo.UpdatePrizes(ctx, tenant.ID, prizes, percentages); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update prizes: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdatePrizesResponse{Prizes: prizes, Percentages: percentages}, nil
}

func (d *tenantDomain) getTenant(ctx context.Context, id string) (*entity.Tenant, error) {
	tenant, err := d.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tenant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tenant: %v", err)
		return nil, errorx.Unknown
	}

	return tenant, nil
}

// preparePrizes trims the prize names and returns the percentages to store.
// Influencers always draw uniformly and keep no percentages. A company
// without a matching percentage list gets an equal split.
func preparePrizes(kind entity.TenantKind, rawPrizes []string, raw []float64) ([]string, []int, error) {
	prizes := []string{}
	for _, p := range rawPrizes {
		if p = strings.TrimSpace(p); p != "" {
			prizes = append(prizes, p)
		}
	}

	if len(prizes) == 0 {
		return nil, nil, errorx.New(errorx.InvalidPrizes, "At least one prize is required")
	}

	if len(prizes) > prize.MaxPrizes {
		return nil, nil, errorx.New(errorx.InvalidPrizes, "At most %d prizes are allowed", prize.MaxPrizes)
	}

	if len(prizes) != len(rawPrizes) {
		// Percentages no longer line up with the prizes once blanks are gone.
		raw = nil
	}

	if kind == entity.TenantInfluencer {
		return prizes, nil, nil
	}

	if len(raw) != len(prizes) {
		return prizes, prize.EqualPercentages(len(prizes)), nil
	}

	percentages, err := prize.NormalizeTo100(raw)
	if err != nil {
		return nil, nil, err
	}

	return prizes, percentages, nil
}
