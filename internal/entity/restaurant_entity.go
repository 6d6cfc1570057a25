// FILE: internal/entity/restaurant_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	Id          uuid.UUID
	Name        string
	Region      string
	Address     string
	Cuisine     string
	Description string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (r *Restaurant) Snapshot() RestaurantSnapshot {
	return RestaurantSnapshot{
		Name:     r.Name,
		Region:   r.Region,
		Address:  r.Address,
		Cuisine:  r.Cuisine,
		ImageURL: r.ImageURL,
	}
}
