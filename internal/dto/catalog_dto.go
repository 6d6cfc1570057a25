package dto

import (
	"github.com/google/uuid"
)

type VineyardResponse struct {
	Id          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Region      string          `json:"region"`
	Address     string          `json:"address"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Offers      []OfferResponse `json:"offers"`
}

type RestaurantResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Region      string    `json:"region"`
	Address     string    `json:"address"`
	Cuisine     string    `json:"cuisine,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
}

type ExploreQuery struct {
	Region string `query:"region"`
	Search string `query:"search"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}
