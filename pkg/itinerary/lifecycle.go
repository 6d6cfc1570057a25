// FILE: pkg/itinerary/lifecycle.go
// Trip state machine: draft -> confirmed -> expired, with draft -> expired
// as a direct transition. Expiry is lazy: reads call Reconcile and persist
// the transition before returning.
package itinerary

import (
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
)

// IsExpired is the pure expiry predicate.
func IsExpired(trip *entity.Trip, now time.Time) bool {
	return !now.Before(trip.ExpiresAt)
}

// Reconcile applies the lazy expiry transition. Idempotent: an already
// expired trip is left untouched and reported as not transitioned, so
// concurrent reads racing on the same transition all compute the identical
// terminal state.
func Reconcile(trip *entity.Trip, now time.Time) (transitioned bool) {
	if trip.Status == entity.TripStatusExpired {
		return false
	}
	if !IsExpired(trip, now) {
		return false
	}
	trip.Status = entity.TripStatusExpired
	return true
}

// Confirm moves a draft trip to confirmed. The expiry check runs first and
// also applies the transition, so a caller that persists the trip after a
// failed Confirm still writes back the terminal state.
func Confirm(trip *entity.Trip, now time.Time) error {
	if IsExpired(trip, now) {
		Reconcile(trip, now)
		return apperror.Expired("trip has expired")
	}
	if trip.Status != entity.TripStatusDraft {
		return apperror.InvalidState("only a draft trip can be confirmed")
	}
	if len(trip.Vineyards) == 0 {
		return apperror.Validation("a trip needs at least one vineyard to be confirmed")
	}

	trip.Status = entity.TripStatusConfirmed
	trip.ConfirmedAt = &now
	return nil
}
