package access

import (
	"testing"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

func regularUser() *entity.User {
	return &entity.User{
		Id:     uuid.New(),
		Email:  "taster@example.com",
		Role:   entity.UserRoleUser,
		Status: entity.UserStatusActive,
	}
}

func TestEvaluateAdminBypass(t *testing.T) {
	admin := regularUser()
	admin.Role = entity.UserRoleAdmin
	// No subscription at all: admin still has access.
	res, changed := Evaluate(admin, time.Now())
	if !res.HasAccess || !res.IsAdmin {
		t.Errorf("admin result = %+v, want access+admin", res)
	}
	if changed {
		t.Error("admin evaluation must not mutate the user")
	}
}

func TestEvaluateNoSubscription(t *testing.T) {
	res, changed := Evaluate(regularUser(), time.Now())
	if res.HasAccess || res.IsAdmin || changed {
		t.Errorf("result = %+v changed=%v, want no access, unchanged", res, changed)
	}
}

func TestSelectTierThenLazyExpiry(t *testing.T) {
	now := time.Now()
	user := regularUser()

	if err := SelectTier(user, entity.TierFree, now); err != nil {
		t.Fatalf("SelectTier: %v", err)
	}
	if user.SelectedTier == nil || *user.SelectedTier != entity.TierFree {
		t.Fatal("tier not assigned")
	}
	if user.SubscriptionExpiresAt == nil || !user.SubscriptionExpiresAt.Equal(now.Add(FreeTierDuration)) {
		t.Fatalf("expiry = %v, want now+%v", user.SubscriptionExpiresAt, FreeTierDuration)
	}

	// Immediately after: access granted, nothing to persist.
	res, changed := Evaluate(user, now)
	if !res.HasAccess || changed {
		t.Fatalf("fresh tier: result = %+v changed=%v", res, changed)
	}

	// After the window elapses: access denied and the stale active flag is
	// flipped off so the caller persists it.
	later := now.Add(FreeTierDuration + time.Second)
	res, changed = Evaluate(user, later)
	if res.HasAccess {
		t.Error("access granted past expiry")
	}
	if !changed {
		t.Error("lazy expiry did not request persistence")
	}
	if user.IsSubscriptionActive {
		t.Error("active flag not reconciled")
	}

	// Re-evaluating the already reconciled user is a pure read.
	res, changed = Evaluate(user, later)
	if res.HasAccess || changed {
		t.Errorf("reconciled user: result = %+v changed=%v", res, changed)
	}
}

func TestSelectTierPaidDuration(t *testing.T) {
	now := time.Now()
	for _, tier := range []entity.Tier{entity.TierPlus, entity.TierPremium, entity.TierPro} {
		user := regularUser()
		if err := SelectTier(user, tier, now); err != nil {
			t.Fatalf("SelectTier(%s): %v", tier, err)
		}
		if !user.SubscriptionExpiresAt.Equal(now.Add(PaidTierDuration)) {
			t.Errorf("%s expiry = %v, want now+%v", tier, user.SubscriptionExpiresAt, PaidTierDuration)
		}
	}
}

func TestSelectTierUnknown(t *testing.T) {
	user := regularUser()
	err := SelectTier(user, entity.Tier("diamond"), time.Now())
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Fatalf("error = %v, want VALIDATION_ERROR", err)
	}
	if user.SelectedTier != nil {
		t.Error("rejected tier selection mutated the user")
	}
}
