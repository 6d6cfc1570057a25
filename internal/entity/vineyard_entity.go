// FILE: internal/entity/vineyard_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Vineyard struct {
	Id          uuid.UUID
	Name        string
	Region      string
	Address     string
	Description string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time

	Offers []VineyardOffer
}

// VineyardOffer is a bookable tasting/tour package of a vineyard. A trip
// stores a snapshot of the chosen offer, not a reference, so later catalog
// edits don't rewrite existing itineraries.
type VineyardOffer struct {
	Id         uuid.UUID
	VineyardId uuid.UUID
	Name       string
	Price      float64
	IsActive   bool
	CreatedAt  time.Time
}

func (v *Vineyard) Snapshot() VineyardSnapshot {
	return VineyardSnapshot{
		Name:     v.Name,
		Region:   v.Region,
		Address:  v.Address,
		ImageURL: v.ImageURL,
	}
}

func (o *VineyardOffer) Snapshot() OfferSnapshot {
	return OfferSnapshot{
		OfferId: o.Id,
		Name:    o.Name,
		Price:   o.Price,
	}
}
