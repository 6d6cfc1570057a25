package dto

import "time"

type TierResponse struct {
	Tier         string  `json:"tier"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	Paid         bool    `json:"paid"`
}

type SelectTierRequest struct {
	Tier string `json:"tier" validate:"required"`
}

// AccessResponse is computed fresh on every call; access answers are never
// cached server side.
type AccessResponse struct {
	HasAccess             bool       `json:"has_access"`
	IsAdmin               bool       `json:"is_admin"`
	SelectedTier          *string    `json:"selected_tier,omitempty"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
}
