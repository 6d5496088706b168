package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dawerha/backend/internal/common"
	"github.com/dawerha/backend/internal/domain/prize"
	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/internal/model"
	"github.com/dawerha/backend/internal/repository"
	"github.com/dawerha/backend/pkg/errorx"
	"github.com/dawerha/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpinDomain interface {
	Spin(context.Context, *model.SpinRequest) (*model.SpinResponse, error)
	GetPrizeDistribution(context.Context, *model.GetPrizeDistributionRequest) (*model.GetPrizeDistributionResponse, error)
}

type spinDomain struct {
	tenantRepo repository.TenantRepository
	spinRepo   repository.SpinEventRepository
	allocator  *prize.Allocator
	now        func() time.Time
}

func NewSpinDomain(
	tenantRepo repository.TenantRepository,
	spinRepo repository.SpinEventRepository,
	allocator *prize.Allocator,
) *spinDomain {
	return &spinDomain{
		tenantRepo: tenantRepo,
		spinRepo:   spinRepo,
		allocator:  allocator,
		now:        time.Now,
	}
}

func (d *spinDomain) Spin(ctx context.Context, req *model.SpinRequest) (*model.SpinResponse, error) {
	tenant, err := d.tenantRepo.GetBySlug(ctx, req.TenantSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tenant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tenant: %v", err)
		return nil, errorx.Unknown
	}

	now := d.now()
	if !tenant.ActivationState().IsEffectivelyActive(now) {
		return nil, errorx.New(errorx.NotActive, "The wheel is not active now")
	}

	visitorName := strings.TrimSpace(req.VisitorName)
	if visitorName == "" {
		return nil, errorx.New(errorx.BadRequest, "Visitor name is required")
	}

	visitorPhone := strings.TrimSpace(req.VisitorPhone)
	if err := checkVisitorPhone(visitorPhone); err != nil {
		return nil, err
	}

	selected, err := d.allocator.Select(tenant.Prizes, tenant.PrizeWeights())
	if err != nil {
		if errors.Is(err, prize.ErrNoPrizes) {
			return nil, errorx.New(errorx.InvalidPrizes, "No prizes available")
		}

		xcontext.Logger(ctx).Errorf("Cannot select prize: %v", err)
		return nil, errorx.Unknown
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = fmt.Sprintf("session_%d", now.Unix())
	}

	event := &entity.SpinEvent{
		ID:           uuid.NewString(),
		TenantID:     tenant.ID,
		VisitorName:  visitorName,
		VisitorPhone: visitorPhone,
		Prize:        selected,
		SessionID:    sessionID,
		IPAddress:    req.IPAddress,
		UserAgent:    req.UserAgent,
	}

	if err := d.spinRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create spin event: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.PrizeSpinsTotal].WithLabelValues(string(tenant.Kind)).Inc()
	return &model.SpinResponse{SpinID: event.ID, Prize: selected}, nil
}

func (d *spinDomain) GetPrizeDistribution(
	ctx context.Context, req *model.GetPrizeDistributionRequest,
) (*model.GetPrizeDistributionResponse, error) {
	if _, err := d.tenantRepo.GetByID(ctx, req.TenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tenant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tenant: %v", err)
		return nil, errorx.Unknown
	}

	counts, err := d.spinRepo.CountByPrize(ctx, req.TenantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count spins: %v", err)
		return nil, errorx.Unknown
	}

	total := int64(0)
	for _, c := range counts {
		total += c.Count
	}

	distributions := []model.PrizeDistribution{}
	for _, c := range counts {
		distributions = append(distributions, model.PrizeDistribution{
			Prize:      c.Prize,
			Count:      c.Count,
			Percentage: float64(c.Count) / float64(total) * 100,
		})
	}

	return &model.GetPrizeDistributionResponse{Total: total, Distributions: distributions}, nil
}
