package itinerary

import (
	"testing"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

func tripWithStops(vineyards int, restaurant bool) *entity.Trip {
	trip := &entity.Trip{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Status:    entity.TripStatusDraft,
		IsActive:  true,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(entity.DraftTripTTL),
	}
	for i := 0; i < vineyards; i++ {
		trip.Vineyards = append(trip.Vineyards, entity.VineyardStop{
			VineyardId: uuid.New(),
			Snapshot:   entity.VineyardSnapshot{Name: string(rune('A' + i))},
		})
	}
	if restaurant {
		trip.Restaurant = &entity.RestaurantStop{
			RestaurantId: uuid.New(),
			Snapshot:     entity.RestaurantSnapshot{Name: "Bistro"},
		}
	}
	trip.CustomOrder = DefaultOrder(trip)
	return trip
}

func orderIDs(trip *entity.Trip) []string {
	ids := make([]string, 0, len(trip.CustomOrder))
	for _, e := range trip.CustomOrder {
		ids = append(ids, e.ItemId)
	}
	return ids
}

func TestRemoveItemReindexesCustomOrder(t *testing.T) {
	// Vineyards [A, B, C], custom order [vineyard-0, vineyard-2, restaurant].
	// Removing vineyard-1 (B) must shift C's entry from index 2 to 1.
	trip := tripWithStops(3, true)
	trip.CustomOrder = []entity.OrderEntry{
		{ItemId: "vineyard-0", Kind: entity.ItemKindVineyard},
		{ItemId: "vineyard-2", Kind: entity.ItemKindVineyard},
		{ItemId: "restaurant", Kind: entity.ItemKindRestaurant},
	}

	if err := RemoveItem(trip, ItemRef{Kind: entity.ItemKindVineyard, Index: 1}); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	if len(trip.Vineyards) != 2 {
		t.Fatalf("vineyards = %d, want 2", len(trip.Vineyards))
	}
	if trip.Vineyards[0].Snapshot.Name != "A" || trip.Vineyards[1].Snapshot.Name != "C" {
		t.Errorf("vineyards = [%s, %s], want [A, C]", trip.Vineyards[0].Snapshot.Name, trip.Vineyards[1].Snapshot.Name)
	}

	got := orderIDs(trip)
	want := []string{"vineyard-0", "vineyard-1", "restaurant"}
	if len(got) != len(want) {
		t.Fatalf("custom order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("custom order[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !Consistent(trip) {
		t.Error("custom order has dangling entries after removal")
	}
}

func TestRemoveItem(t *testing.T) {
	tests := []struct {
		name      string
		vineyards int
		rest      bool
		ref       ItemRef
		wantCode  string
	}{
		{
			name:      "remove middle vineyard",
			vineyards: 3,
			rest:      false,
			ref:       ItemRef{Kind: entity.ItemKindVineyard, Index: 1},
		},
		{
			name:      "remove restaurant",
			vineyards: 2,
			rest:      true,
			ref:       ItemRef{Kind: entity.ItemKindRestaurant},
		},
		{
			name:      "index out of range",
			vineyards: 2,
			rest:      false,
			ref:       ItemRef{Kind: entity.ItemKindVineyard, Index: 5},
			wantCode:  apperror.CodeOutOfRange,
		},
		{
			name:      "negative index",
			vineyards: 2,
			rest:      false,
			ref:       ItemRef{Kind: entity.ItemKindVineyard, Index: -1},
			wantCode:  apperror.CodeOutOfRange,
		},
		{
			name:      "last vineyard rejected",
			vineyards: 1,
			rest:      true,
			ref:       ItemRef{Kind: entity.ItemKindVineyard, Index: 0},
			wantCode:  apperror.CodeValidation,
		},
		{
			name:      "no restaurant to remove",
			vineyards: 2,
			rest:      false,
			ref:       ItemRef{Kind: entity.ItemKindRestaurant},
			wantCode:  apperror.CodeOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := tripWithStops(tt.vineyards, tt.rest)
			before := len(trip.Vineyards)

			err := RemoveItem(trip, tt.ref)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("RemoveItem: %v", err)
				}
				if !Consistent(trip) {
					t.Error("custom order inconsistent after removal")
				}
				return
			}

			if !apperror.IsCode(err, tt.wantCode) {
				t.Fatalf("error = %v, want code %s", err, tt.wantCode)
			}
			// A rejected removal must leave the trip untouched.
			if len(trip.Vineyards) != before {
				t.Errorf("vineyards mutated on rejected removal: %d -> %d", before, len(trip.Vineyards))
			}
		})
	}
}

func TestSetCustomOrder(t *testing.T) {
	trip := tripWithStops(2, true)

	valid := []ItemRef{
		{Kind: entity.ItemKindRestaurant},
		{Kind: entity.ItemKindVineyard, Index: 1},
		{Kind: entity.ItemKindVineyard, Index: 0},
	}
	if err := SetCustomOrder(trip, valid); err != nil {
		t.Fatalf("SetCustomOrder: %v", err)
	}
	if got := orderIDs(trip); got[0] != "restaurant" || got[1] != "vineyard-1" || got[2] != "vineyard-0" {
		t.Errorf("custom order = %v", got)
	}

	// Entries addressing absent stops reject the whole request.
	stale := []ItemRef{{Kind: entity.ItemKindVineyard, Index: 7}}
	err := SetCustomOrder(trip, stale)
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Fatalf("error = %v, want VALIDATION_ERROR", err)
	}
	if len(trip.CustomOrder) != 3 {
		t.Error("rejected reorder mutated the custom order")
	}
}

func TestUpdateItemTime(t *testing.T) {
	trip := tripWithStops(2, true)
	at := time.Date(2026, 9, 12, 11, 30, 0, 0, time.UTC)

	if err := UpdateItemTime(trip, ItemRef{Kind: entity.ItemKindVineyard, Index: 1}, at); err != nil {
		t.Fatalf("UpdateItemTime vineyard: %v", err)
	}
	if trip.Vineyards[1].Time == nil || !trip.Vineyards[1].Time.Equal(at) {
		t.Error("vineyard time not set")
	}

	if err := UpdateItemTime(trip, ItemRef{Kind: entity.ItemKindRestaurant}, at); err != nil {
		t.Fatalf("UpdateItemTime restaurant: %v", err)
	}
	if trip.Restaurant.Time == nil || !trip.Restaurant.Time.Equal(at) {
		t.Error("restaurant time not set")
	}

	err := UpdateItemTime(trip, ItemRef{Kind: entity.ItemKindVineyard, Index: 9}, at)
	if !apperror.IsCode(err, apperror.CodeOutOfRange) {
		t.Errorf("error = %v, want OUT_OF_RANGE", err)
	}

	trip.Restaurant = nil
	err = UpdateItemTime(trip, ItemRef{Kind: entity.ItemKindRestaurant}, at)
	if !apperror.IsCode(err, apperror.CodeInvalidTarget) {
		t.Errorf("error = %v, want INVALID_TARGET", err)
	}
}

func TestParseItemID(t *testing.T) {
	tests := []struct {
		in      string
		want    ItemRef
		wantErr bool
	}{
		{in: "vineyard-0", want: ItemRef{Kind: entity.ItemKindVineyard, Index: 0}},
		{in: "vineyard-7", want: ItemRef{Kind: entity.ItemKindVineyard, Index: 7}},
		{in: "restaurant", want: ItemRef{Kind: entity.ItemKindRestaurant}},
		{in: "vineyard--1", wantErr: true},
		{in: "vineyard-", wantErr: true},
		{in: "winery-2", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseItemID(tt.in)
			if tt.wantErr {
				if !apperror.IsCode(err, apperror.CodeInvalidTarget) {
					t.Fatalf("error = %v, want INVALID_TARGET", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseItemID(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseItemID(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.ItemID() != tt.in {
				t.Errorf("round trip = %q, want %q", got.ItemID(), tt.in)
			}
		})
	}
}
