// FILE: pkg/itinerary/ordering.go
// Ordering keeps Trip.CustomOrder a valid permutation of the currently
// present stops across insertions, removals and client reorders.
package itinerary

import (
	"fmt"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
)

// resolves reports whether ref points at a currently-present stop.
func resolves(trip *entity.Trip, ref ItemRef) bool {
	switch ref.Kind {
	case entity.ItemKindVineyard:
		return ref.Index >= 0 && ref.Index < len(trip.Vineyards)
	case entity.ItemKindRestaurant:
		return trip.Restaurant != nil
	}
	return false
}

// RemoveItem removes the addressed stop and repairs the custom order in the
// same step. For a vineyard removal every later vineyard shifts down one
// index, so surviving custom-order entries with a higher encoded index are
// rewritten to index-1; the entry for the removed stop is dropped. The splice
// and the reindex are computed together and assigned once, so a caller can
// never observe a half-repaired trip.
//
// Removing the last remaining vineyard is rejected wholesale: the validation
// runs against the would-be result before anything is assigned.
func RemoveItem(trip *entity.Trip, ref ItemRef) error {
	switch ref.Kind {
	case entity.ItemKindVineyard:
		if ref.Index < 0 || ref.Index >= len(trip.Vineyards) {
			return apperror.OutOfRange(fmt.Sprintf("no vineyard stop at position %d", ref.Index))
		}
		if len(trip.Vineyards) == 1 {
			return apperror.Validation("at least one vineyard required")
		}

		stops := make([]entity.VineyardStop, 0, len(trip.Vineyards)-1)
		stops = append(stops, trip.Vineyards[:ref.Index]...)
		stops = append(stops, trip.Vineyards[ref.Index+1:]...)

		order := make([]entity.OrderEntry, 0, len(trip.CustomOrder))
		for _, e := range trip.CustomOrder {
			entryRef, err := refFromEntry(e)
			if err != nil {
				// Stale garbage from a past bug self-heals on the next
				// mutation instead of poisoning the trip forever.
				continue
			}
			if entryRef.Kind == entity.ItemKindVineyard {
				if entryRef.Index == ref.Index {
					continue
				}
				if entryRef.Index > ref.Index {
					entryRef.Index--
				}
			}
			order = append(order, entryRef.Entry())
		}

		trip.Vineyards = stops
		trip.CustomOrder = order
		return nil

	case entity.ItemKindRestaurant:
		if trip.Restaurant == nil {
			return apperror.OutOfRange("no restaurant on this trip")
		}

		order := make([]entity.OrderEntry, 0, len(trip.CustomOrder))
		for _, e := range trip.CustomOrder {
			if e.Kind == entity.ItemKindRestaurant {
				continue
			}
			order = append(order, e)
		}

		trip.Restaurant = nil
		trip.CustomOrder = order
		return nil
	}

	return apperror.InvalidTarget(fmt.Sprintf("unknown item kind %q", ref.Kind))
}

// SetCustomOrder replaces the custom order wholesale. Client-driven reorders
// must be exact: an entry addressing an absent stop rejects the whole request
// rather than being dropped silently.
func SetCustomOrder(trip *entity.Trip, refs []ItemRef) error {
	for _, ref := range refs {
		if !resolves(trip, ref) {
			return apperror.Validation(fmt.Sprintf("order entry %q does not resolve to an item on this trip", ref.ItemID()))
		}
	}

	order := make([]entity.OrderEntry, 0, len(refs))
	for _, ref := range refs {
		order = append(order, ref.Entry())
	}
	trip.CustomOrder = order
	return nil
}

// UpdateItemTime sets the scheduled visit time on the addressed stop.
func UpdateItemTime(trip *entity.Trip, ref ItemRef, t time.Time) error {
	switch ref.Kind {
	case entity.ItemKindVineyard:
		if ref.Index < 0 || ref.Index >= len(trip.Vineyards) {
			return apperror.OutOfRange(fmt.Sprintf("no vineyard stop at position %d", ref.Index))
		}
		trip.Vineyards[ref.Index].Time = &t
		return nil
	case entity.ItemKindRestaurant:
		if trip.Restaurant == nil {
			return apperror.InvalidTarget("no restaurant on this trip")
		}
		trip.Restaurant.Time = &t
		return nil
	}
	return apperror.InvalidTarget(fmt.Sprintf("unknown item kind %q", ref.Kind))
}

// DefaultOrder rebuilds the custom order from scratch: vineyard stops in
// insertion order, restaurant last. Used when the membership of the
// collections is replaced wholesale (trip creation, full update), where any
// previous custom order is no longer meaningful.
func DefaultOrder(trip *entity.Trip) []entity.OrderEntry {
	order := make([]entity.OrderEntry, 0, len(trip.Vineyards)+1)
	for i := range trip.Vineyards {
		order = append(order, ItemRef{Kind: entity.ItemKindVineyard, Index: i}.Entry())
	}
	if trip.Restaurant != nil {
		order = append(order, ItemRef{Kind: entity.ItemKindRestaurant}.Entry())
	}
	return order
}

// Consistent reports whether every custom-order entry resolves to a present
// stop. It backs tests and the repository's save-time sanity check.
func Consistent(trip *entity.Trip) bool {
	for _, e := range trip.CustomOrder {
		ref, err := refFromEntry(e)
		if err != nil || !resolves(trip, ref) {
			return false
		}
	}
	return true
}
