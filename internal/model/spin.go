package model

type SpinRequest struct {
	TenantSlug   string `json:"tenant_slug"`
	VisitorName  string `json:"visitor_name"`
	VisitorPhone string `json:"visitor_phone"`
	SessionID    string `json:"session_id"`
	IPAddress    string `json:"ip_address"`
	UserAgent    string `json:"user_agent"`
}

type SpinResponse struct {
	SpinID string `json:"spin_id"`
	Prize  string `json:"prize"`
}

type GetPrizeDistributionRequest struct {
	TenantID string `json:"tenant_id"`
}

type PrizeDistribution struct {
	Prize      string  `json:"prize"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type GetPrizeDistributionResponse struct {
	Total         int64               `json:"total"`
	Distributions []PrizeDistribution `json:"distributions"`
}
