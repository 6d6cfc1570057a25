// FILE: internal/entity/trip_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusConfirmed TripStatus = "confirmed"
	TripStatusExpired   TripStatus = "expired"
)

type ItemKind string

const (
	ItemKindVineyard   ItemKind = "vineyard"
	ItemKindRestaurant ItemKind = "restaurant"
)

// MaxVineyardStops caps the vineyard collection of a trip.
const MaxVineyardStops = 10

// DraftTripTTL bounds the lifetime of a trip from creation. A trip past its
// ExpiresAt is lazily transitioned to expired on the next read, whatever its
// status at that point.
const DraftTripTTL = 7 * 24 * time.Hour

type VineyardSnapshot struct {
	Name     string `json:"name"`
	Region   string `json:"region"`
	Address  string `json:"address"`
	ImageURL string `json:"image_url"`
}

type OfferSnapshot struct {
	OfferId uuid.UUID `json:"offer_id"`
	Name    string    `json:"name"`
	Price   float64   `json:"price"`
}

type RestaurantSnapshot struct {
	Name     string `json:"name"`
	Region   string `json:"region"`
	Address  string `json:"address"`
	Cuisine  string `json:"cuisine"`
	ImageURL string `json:"image_url"`
}

// VineyardStop is one entry of the trip's ordered vineyard collection.
// Ordering here is insertion order; the user-visible visiting order lives in
// Trip.CustomOrder.
type VineyardStop struct {
	VineyardId uuid.UUID        `json:"vineyard_id"`
	Snapshot   VineyardSnapshot `json:"snapshot"`
	Offer      *OfferSnapshot   `json:"offer,omitempty"`
	Time       *time.Time       `json:"time,omitempty"`
}

// RestaurantStop is the optional singleton restaurant slot.
type RestaurantStop struct {
	RestaurantId uuid.UUID          `json:"restaurant_id"`
	Snapshot     RestaurantSnapshot `json:"snapshot"`
	Time         *time.Time         `json:"time,omitempty"`
}

// OrderEntry is the persisted, denormalized form of one custom-order slot.
// ItemId encodes kind plus positional index ("vineyard-2", "restaurant") and
// must always resolve to a currently-present stop.
type OrderEntry struct {
	ItemId string   `json:"item_id"`
	Kind   ItemKind `json:"kind"`
}

type Trip struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Vineyards   []VineyardStop
	Restaurant  *RestaurantStop
	CustomOrder []OrderEntry
	Status      TripStatus
	IsActive    bool
	// Version backs the optimistic concurrency check on save. The repository
	// only persists a trip whose stored version still matches.
	Version     int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	ConfirmedAt *time.Time
	ExpiresAt   time.Time
}
