package model

import "time"

type Tenant struct {
	ID                  string     `json:"id"`
	Kind                string     `json:"kind"`
	Name                string     `json:"name"`
	Slug                string     `json:"slug"`
	Status              string     `json:"status"`
	DynamicStatus       string     `json:"dynamic_status"`
	IsActive            bool       `json:"is_active"`
	IsEffectivelyActive bool       `json:"is_effectively_active"`
	ActiveHours         int        `json:"active_hours"`
	ActivationStartTime *time.Time `json:"activation_start_time"`
	ActivationEndTime   *time.Time `json:"activation_end_time"`
	Prizes              []string   `json:"prizes"`
	Percentages         []int      `json:"percentages"`
}

type CreateTenantRequest struct {
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	ActiveHours int       `json:"active_hours"`
	Prizes      []string  `json:"prizes"`
	Percentages []float64 `json:"percentages"`
}

type CreateTenantResponse struct {
	ID string `json:"id"`
}

type GetTenantRequest struct {
	TenantID string `json:"tenant_id"`
}

type GetTenantResponse struct {
	Tenant Tenant `json:"tenant"`
}

type ActivateTenantRequest struct {
	TenantID string `json:"tenant_id"`

	// Hours defaults to the tenant's active hours.
	Hours int `json:"hours"`
}

type ActivateTenantResponse struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

type DeactivateTenantRequest struct {
	TenantID string `json:"tenant_id"`
}

type DeactivateTenantResponse struct{}

type ReviewTenantRequest struct {
	TenantID string `json:"tenant_id"`
}

type ReviewTenantResponse struct{}

type UpdatePrizesRequest struct {
	TenantID    string    `json:"tenant_id"`
	Prizes      []string  `json:"prizes"`
	Percentages []float64 `json:"percentages"`
}

type UpdatePrizesResponse struct {
	Prizes      []string `json:"prizes"`
	Percentages []int    `json:"percentages"`
}
