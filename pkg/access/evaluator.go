// FILE: pkg/access/evaluator.go
// Subscription access evaluation. Evaluate follows the reconcile pattern:
// it mutates the user in place when the lazy expiry fires and reports the
// change, and the caller persists before answering. Access is computed fresh
// on every request; nothing here may be cached across requests.
package access

import (
	"fmt"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
)

// Tier durations. The free tier is a short trial; paid tiers run a full
// billing period.
const (
	FreeTierDuration = 7 * 24 * time.Hour
	PaidTierDuration = 30 * 24 * time.Hour
)

type Result struct {
	HasAccess bool `json:"has_access"`
	IsAdmin   bool `json:"is_admin"`
}

// TierDuration returns the subscription lifetime granted by a tier.
func TierDuration(tier entity.Tier) time.Duration {
	if tier == entity.TierFree {
		return FreeTierDuration
	}
	return PaidTierDuration
}

// Evaluate decides current access for a user. Admins bypass every check.
// For everyone else the active flag is reconciled against the expiry
// timestamp first; when that flips the flag, changed is true and the caller
// must persist the user before returning the result.
func Evaluate(user *entity.User, now time.Time) (Result, bool) {
	if user.Role == entity.UserRoleAdmin {
		return Result{HasAccess: true, IsAdmin: true}, false
	}

	changed := false
	if user.IsSubscriptionActive && user.SubscriptionExpiresAt != nil && !now.Before(*user.SubscriptionExpiresAt) {
		user.IsSubscriptionActive = false
		changed = true
	}

	hasAccess := user.IsSubscriptionActive &&
		user.SubscriptionExpiresAt != nil &&
		now.Before(*user.SubscriptionExpiresAt)

	return Result{HasAccess: hasAccess, IsAdmin: false}, changed
}

// SelectTier assigns a tier to the user and opens a fresh subscription
// window from now.
func SelectTier(user *entity.User, tier entity.Tier, now time.Time) error {
	if !tier.Valid() {
		return apperror.Validation(fmt.Sprintf("unknown tier %q", tier))
	}

	expiresAt := now.Add(TierDuration(tier))
	user.SelectedTier = &tier
	user.TierSelectedAt = &now
	user.SubscriptionExpiresAt = &expiresAt
	user.IsSubscriptionActive = true
	return nil
}
