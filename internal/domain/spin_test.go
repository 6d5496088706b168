package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/dawerha/backend/internal/domain/prize"
	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/internal/model"
	"github.com/dawerha/backend/internal/repository"
	"github.com/dawerha/backend/pkg/errorx"
	"github.com/dawerha/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestSpinDomain(now time.Time) *spinDomain {
	d := NewSpinDomain(
		repository.NewTenantRepository(),
		repository.NewSpinEventRepository(),
		prize.NewAllocator(rand.New(rand.NewSource(1))),
	)
	d.now = fixedClock(now)
	return d
}

func Test_spinDomain_Spin(t *testing.T) {
	ctx := testutil.MockContext()
	now := riyadhTime(4, 10, 0)
	start := riyadhTime(4, 9, 0)
	end := riyadhTime(4, 17, 0)
	d := newTestSpinDomain(now)

	active, err := testutil.SampleTenant(ctx, &entity.Tenant{
		Slug:                "cafe",
		IsActive:            true,
		ActivationStartTime: &start,
		ActivationEndTime:   &end,
	})
	require.NoError(t, err)

	_, err = testutil.SampleTenant(ctx, &entity.Tenant{Slug: "closed"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *model.SpinRequest
		code errorx.Code
	}{
		{
			name: "unknown tenant",
			req:  &model.SpinRequest{TenantSlug: "missing", VisitorName: "Sara"},
			code: errorx.NotFound,
		},
		{
			name: "inactive tenant",
			req:  &model.SpinRequest{TenantSlug: "closed", VisitorName: "Sara"},
			code: errorx.NotActive,
		},
		{
			name: "missing visitor name",
			req:  &model.SpinRequest{TenantSlug: "cafe", VisitorName: " "},
			code: errorx.BadRequest,
		},
		{
			name: "phone without 05 prefix",
			req:  &model.SpinRequest{TenantSlug: "cafe", VisitorName: "Sara", VisitorPhone: "0612345678"},
			code: errorx.BadRequest,
		},
		{
			name: "phone too short",
			req:  &model.SpinRequest{TenantSlug: "cafe", VisitorName: "Sara", VisitorPhone: "051234567"},
			code: errorx.BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Spin(ctx, tt.req)
			require.Error(t, err)
			require.Equal(t, tt.code, errorx.CodeOf(err))
		})
	}

	resp, err := d.Spin(ctx, &model.SpinRequest{
		TenantSlug:   "cafe",
		VisitorName:  " Sara ",
		VisitorPhone: "0512345678",
		IPAddress:    "10.0.0.1",
		UserAgent:    "test",
	})
	require.NoError(t, err)
	require.Contains(t, []string(active.Prizes), resp.Prize)
	require.NotEmpty(t, resp.SpinID)

	// Phone is optional.
	_, err = d.Spin(ctx, &model.SpinRequest{TenantSlug: "cafe", VisitorName: "Omar"})
	require.NoError(t, err)

	// The window is over.
	_, err = newTestSpinDomain(riyadhTime(4, 17, 1)).Spin(ctx, &model.SpinRequest{TenantSlug: "cafe", VisitorName: "Omar"})
	require.Equal(t, errorx.NotActive, errorx.CodeOf(err))
}

func Test_spinDomain_Spin_NoPrizes(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestSpinDomain(time.Now())

	_, err := testutil.SampleTenant(ctx, &entity.Tenant{
		Slug:     "empty",
		IsActive: true,
		Prizes:   entity.Array[string]{},
	})
	require.NoError(t, err)

	_, err = d.Spin(ctx, &model.SpinRequest{TenantSlug: "empty", VisitorName: "Sara"})
	require.Equal(t, errorx.InvalidPrizes, errorx.CodeOf(err))
}

func Test_spinDomain_GetPrizeDistribution(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestSpinDomain(time.Now())

	tenant, err := testutil.SampleTenant(ctx, &entity.Tenant{
		Slug:        "weighted",
		IsActive:    true,
		Prizes:      entity.Array[string]{"A", "B"},
		Percentages: entity.Array[int]{90, 10},
	})
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		_, err := d.Spin(ctx, &model.SpinRequest{TenantSlug: "weighted", VisitorName: "Sara"})
		require.NoError(t, err)
	}

	resp, err := d.GetPrizeDistribution(ctx, &model.GetPrizeDistributionRequest{TenantID: tenant.ID})
	require.NoError(t, err)
	require.Equal(t, int64(200), resp.Total)
	require.Len(t, resp.Distributions, 2)
	require.Equal(t, "A", resp.Distributions[0].Prize)
	require.Greater(t, resp.Distributions[0].Count, resp.Distributions[1].Count)

	sum := 0.0
	for _, dist := range resp.Distributions {
		sum += dist.Percentage
	}
	require.InDelta(t, 100, sum, 1e-9)

	_, err = d.GetPrizeDistribution(ctx, &model.GetPrizeDistributionRequest{TenantID: "missing"})
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}
