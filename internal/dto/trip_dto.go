package dto

import (
	"time"

	"github.com/google/uuid"
)

type TripStopRequest struct {
	VineyardId uuid.UUID  `json:"vineyard_id" validate:"required"`
	OfferId    *uuid.UUID `json:"offer_id"`
}

type CreateTripRequest struct {
	Title        string            `json:"title" validate:"required,min=1,max=120"`
	Vineyards    []TripStopRequest `json:"vineyards" validate:"required,min=1,max=10,dive"`
	RestaurantId *uuid.UUID        `json:"restaurant_id"`
}

type CreateTripResponse struct {
	Id uuid.UUID `json:"id"`
}

// UpdateTripRequest edits a draft's title, appends vineyard stops, or swaps
// the restaurant slot. RemoveRestaurant wins over RestaurantId when both are
// set.
type UpdateTripRequest struct {
	Id               uuid.UUID         `json:"-"`
	Title            *string           `json:"title" validate:"omitempty,min=1,max=120"`
	AddVineyards     []TripStopRequest `json:"add_vineyards" validate:"omitempty,dive"`
	RestaurantId     *uuid.UUID        `json:"restaurant_id"`
	RemoveRestaurant bool              `json:"remove_restaurant"`
}

type ReorderRequest struct {
	Id    uuid.UUID `json:"-"`
	Order []string  `json:"order" validate:"required,min=1"`
}

// UpdateItemTimeRequest sets the visiting time of one itinerary item.
type UpdateItemTimeRequest struct {
	Id     uuid.UUID  `json:"-"`
	ItemId string     `json:"-"`
	Time   *time.Time `json:"time" validate:"required"`
}

type OfferResponse struct {
	OfferId uuid.UUID `json:"offer_id"`
	Name    string    `json:"name"`
	Price   float64   `json:"price"`
}

type TripVineyardStopResponse struct {
	ItemId     string         `json:"item_id"` // "vineyard-<i>"
	VineyardId uuid.UUID      `json:"vineyard_id"`
	Name       string         `json:"name"`
	Region     string         `json:"region"`
	Address    string         `json:"address"`
	ImageURL   string         `json:"image_url,omitempty"`
	Offer      *OfferResponse `json:"offer,omitempty"`
	Time       *time.Time     `json:"time,omitempty"`
}

type TripRestaurantResponse struct {
	ItemId       string     `json:"item_id"` // always "restaurant"
	RestaurantId uuid.UUID  `json:"restaurant_id"`
	Name         string     `json:"name"`
	Region       string     `json:"region"`
	Address      string     `json:"address"`
	Cuisine      string     `json:"cuisine,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	Time         *time.Time `json:"time,omitempty"`
}

type TripResponse struct {
	Id          uuid.UUID                  `json:"id"`
	Title       string                     `json:"title"`
	Status      string                     `json:"status"`
	Vineyards   []TripVineyardStopResponse `json:"vineyards"`
	Restaurant  *TripRestaurantResponse    `json:"restaurant,omitempty"`
	Order       []string                   `json:"order"` // item ids in display order
	Version     int                        `json:"version"`
	CreatedAt   time.Time                  `json:"created_at"`
	ConfirmedAt *time.Time                 `json:"confirmed_at,omitempty"`
	ExpiresAt   time.Time                  `json:"expires_at"`
}

type TripListResponse struct {
	Trips []TripResponse `json:"trips"`
	Total int64          `json:"total"`
}
