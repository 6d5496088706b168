package entity

import (
	"database/sql"
	"time"

	"github.com/dawerha/backend/internal/domain/activation"
	"github.com/dawerha/backend/pkg/enum"
)

type TenantKind string

var (
	TenantCompany    = enum.New(TenantKind("company"))
	TenantInfluencer = enum.New(TenantKind("influencer"))
)

type TenantStatus string

var (
	TenantPending  = enum.New(TenantStatus("pending"))
	TenantApproved = enum.New(TenantStatus("approved"))
	TenantRejected = enum.New(TenantStatus("rejected"))
)

// Tenant is a company or an influencer owning a spin wheel. The activation
// state lives in the same row.
type Tenant struct {
	Base

	Kind       TenantKind
	Name       string
	Slug       string `gorm:"unique"`
	Status     TenantStatus
	ApprovedAt sql.NullTime

	IsActive            bool
	ActiveHours         int
	ActivationStartTime *time.Time
	ActivationEndTime   *time.Time

	Prizes      Array[string]
	Percentages Array[int]
}

// TenantActivation is the set of columns an activation change writes. Nil
// window bounds are written as NULL.
type TenantActivation struct {
	IsActive            bool       `structs:"is_active"`
	ActivationStartTime *time.Time `structs:"activation_start_time"`
	ActivationEndTime   *time.Time `structs:"activation_end_time"`
}

func (t *Tenant) ActivationState() activation.State {
	return activation.State{
		IsActive:    t.IsActive,
		WindowStart: t.ActivationStartTime,
		WindowEnd:   t.ActivationEndTime,
		ActiveHours: t.ActiveHours,
	}
}

func (t *Tenant) SetActivationState(s activation.State) {
	t.IsActive = s.IsActive
	t.ActivationStartTime = s.WindowStart
	t.ActivationEndTime = s.WindowEnd
}

func (t *Tenant) Activation() TenantActivation {
	return TenantActivation{
		IsActive:            t.IsActive,
		ActivationStartTime: t.ActivationStartTime,
		ActivationEndTime:   t.ActivationEndTime,
	}
}

// PrizeWeights returns the stored percentages as draw weights. Influencers
// and tenants without percentages draw uniformly.
func (t *Tenant) PrizeWeights() []float64 {
	if t.Kind == TenantInfluencer || len(t.Percentages) == 0 {
		return nil
	}

	weights := make([]float64, len(t.Percentages))
	for i, p := range t.Percentages {
		weights[i] = float64(p)
	}

	return weights
}
