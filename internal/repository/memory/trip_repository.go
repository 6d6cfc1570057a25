package memory

import (
	"context"
	"sync"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/repository/contract"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TripRepository struct {
	mu      sync.RWMutex
	trips   map[uuid.UUID]*entity.Trip
	deleted map[uuid.UUID]bool
}

func NewTripRepository() *TripRepository {
	return &TripRepository{
		trips:   make(map[uuid.UUID]*entity.Trip),
		deleted: make(map[uuid.UUID]bool),
	}
}

var _ contract.TripRepository = (*TripRepository)(nil)

func cloneTrip(t *entity.Trip) *entity.Trip {
	c := *t
	c.Vineyards = make([]entity.VineyardStop, len(t.Vineyards))
	copy(c.Vineyards, t.Vineyards)
	for i, v := range t.Vineyards {
		if v.Offer != nil {
			offer := *v.Offer
			c.Vineyards[i].Offer = &offer
		}
		if v.Time != nil {
			at := *v.Time
			c.Vineyards[i].Time = &at
		}
	}
	if t.Restaurant != nil {
		r := *t.Restaurant
		if t.Restaurant.Time != nil {
			at := *t.Restaurant.Time
			r.Time = &at
		}
		c.Restaurant = &r
	}
	c.CustomOrder = make([]entity.OrderEntry, len(t.CustomOrder))
	copy(c.CustomOrder, t.CustomOrder)
	return &c
}

func (r *TripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if trip.Id == uuid.Nil {
		trip.Id = uuid.New()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now()
	}
	if trip.Version == 0 {
		trip.Version = 1
	}
	r.trips[trip.Id] = cloneTrip(trip)
	return nil
}

func (r *TripRepository) Save(ctx context.Context, trip *entity.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.trips[trip.Id]
	if !ok || r.deleted[trip.Id] || stored.Version != trip.Version {
		return apperror.Conflict("trip was modified concurrently")
	}
	trip.Version++
	r.trips[trip.Id] = cloneTrip(trip)
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleted[id] = true
	return nil
}

func (r *TripRepository) matching(specs []specification.Specification) []*entity.Trip {
	q := parseSpecs(specs)
	var out []*entity.Trip
	for id, t := range r.trips {
		if r.deleted[id] {
			continue
		}
		if !q.matchesID(id) {
			continue
		}
		if q.ownerId != nil && t.UserId != *q.ownerId {
			continue
		}
		if q.status != "" && string(t.Status) != q.status {
			continue
		}
		out = append(out, cloneTrip(t))
	}
	sortByCreatedAt(out, func(t *entity.Trip) time.Time { return t.CreatedAt }, q)
	return paginate(out, q)
}

func (r *TripRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.matching(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *TripRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.matching(specs), nil
}

func (r *TripRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matching(specs))), nil
}
