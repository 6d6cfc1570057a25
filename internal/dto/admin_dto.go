package dto

import (
	"time"

	"github.com/google/uuid"
)

type OfferRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type CreateVineyardRequest struct {
	Name        string         `json:"name" validate:"required"`
	Region      string         `json:"region" validate:"required"`
	Address     string         `json:"address" validate:"required"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	Offers      []OfferRequest `json:"offers" validate:"omitempty,dive"`
}

type UpdateVineyardRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required"`
	Region      string    `json:"region" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    *bool     `json:"is_active"`
}

type CreateRestaurantRequest struct {
	Name        string `json:"name" validate:"required"`
	Region      string `json:"region" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Cuisine     string `json:"cuisine"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type UpdateRestaurantRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required"`
	Region      string    `json:"region" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	Cuisine     string    `json:"cuisine"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    *bool     `json:"is_active"`
}

type AdminUserResponse struct {
	Id                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	FullName              string     `json:"full_name"`
	Role                  string     `json:"role"`
	Status                string     `json:"status"`
	SelectedTier          *string    `json:"selected_tier,omitempty"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type AdminUserListResponse struct {
	Users []AdminUserResponse `json:"users"`
	Total int64               `json:"total"`
}

type UpdateUserStatusRequest struct {
	Id     uuid.UUID `json:"-"`
	Status string    `json:"status" validate:"required,oneof=active blocked"`
}
