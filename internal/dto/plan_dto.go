// FILE: internal/dto/plan_dto.go
package dto

type PlanLimitsDTO struct {
	MaxPhotos int `json:"max_photos"` // -1 = unlimited
}

type PlanResponse struct {
	Tier     string        `json:"tier"`
	Name     string        `json:"name"`
	PriceBRL float64       `json:"price_brl"`
	Limits   PlanLimitsDTO `json:"limits"`
	Features []FeatureDTO  `json:"features"`
}

type FeatureDTO struct {
	Key       string `json:"key"`
	IsEnabled bool   `json:"is_enabled"`
}

// GateDTO describes one editor group: whether the tier may edit it and,
// when it may not, the minimum tier that unlocks it (for the upsell message).
type GateDTO struct {
	Group       string `json:"group"`
	Feature     string `json:"feature"`
	Enabled     bool   `json:"enabled"`
	MinimumTier string `json:"minimum_tier,omitempty"`
}

type PlanGatesResponse struct {
	Tier  string    `json:"tier"`
	Gates []GateDTO `json:"gates"`
}
