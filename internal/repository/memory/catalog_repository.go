package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/repository/contract"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VineyardRepository struct {
	mu        sync.RWMutex
	vineyards map[uuid.UUID]*entity.Vineyard
}

func NewVineyardRepository() *VineyardRepository {
	return &VineyardRepository{vineyards: make(map[uuid.UUID]*entity.Vineyard)}
}

var _ contract.VineyardRepository = (*VineyardRepository)(nil)

func cloneVineyard(v *entity.Vineyard) *entity.Vineyard {
	c := *v
	c.Offers = make([]entity.VineyardOffer, len(v.Offers))
	copy(c.Offers, v.Offers)
	return &c
}

func (r *VineyardRepository) Create(ctx context.Context, vineyard *entity.Vineyard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vineyard.Id == uuid.Nil {
		vineyard.Id = uuid.New()
	}
	if vineyard.CreatedAt.IsZero() {
		vineyard.CreatedAt = time.Now()
	}
	r.vineyards[vineyard.Id] = cloneVineyard(vineyard)
	return nil
}

func (r *VineyardRepository) Update(ctx context.Context, vineyard *entity.Vineyard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vineyards[vineyard.Id] = cloneVineyard(vineyard)
	return nil
}

func (r *VineyardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.vineyards, id)
	return nil
}

func (r *VineyardRepository) matching(specs []specification.Specification) []*entity.Vineyard {
	q := parseSpecs(specs)
	var out []*entity.Vineyard
	for id, v := range r.vineyards {
		if !q.matchesID(id) {
			continue
		}
		if q.region != "" && v.Region != q.region {
			continue
		}
		if q.activeOnly && !v.IsActive {
			continue
		}
		if q.search != "" && !strings.Contains(strings.ToLower(v.Name), strings.ToLower(q.search)) {
			continue
		}
		out = append(out, cloneVineyard(v))
	}
	sortByCreatedAt(out, func(v *entity.Vineyard) time.Time { return v.CreatedAt }, q)
	return paginate(out, q)
}

func (r *VineyardRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Vineyard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.matching(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *VineyardRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Vineyard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.matching(specs), nil
}

func (r *VineyardRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matching(specs))), nil
}

type RestaurantRepository struct {
	mu          sync.RWMutex
	restaurants map[uuid.UUID]*entity.Restaurant
}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{restaurants: make(map[uuid.UUID]*entity.Restaurant)}
}

var _ contract.RestaurantRepository = (*RestaurantRepository)(nil)

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if restaurant.Id == uuid.Nil {
		restaurant.Id = uuid.New()
	}
	if restaurant.CreatedAt.IsZero() {
		restaurant.CreatedAt = time.Now()
	}
	c := *restaurant
	r.restaurants[restaurant.Id] = &c
	return nil
}

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *restaurant
	r.restaurants[restaurant.Id] = &c
	return nil
}

func (r *RestaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.restaurants, id)
	return nil
}

func (r *RestaurantRepository) matching(specs []specification.Specification) []*entity.Restaurant {
	q := parseSpecs(specs)
	var out []*entity.Restaurant
	for id, rest := range r.restaurants {
		if !q.matchesID(id) {
			continue
		}
		if q.region != "" && rest.Region != q.region {
			continue
		}
		if q.activeOnly && !rest.IsActive {
			continue
		}
		if q.search != "" && !strings.Contains(strings.ToLower(rest.Name), strings.ToLower(q.search)) {
			continue
		}
		c := *rest
		out = append(out, &c)
	}
	sortByCreatedAt(out, func(rest *entity.Restaurant) time.Time { return rest.CreatedAt }, q)
	return paginate(out, q)
}

func (r *RestaurantRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.matching(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *RestaurantRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.matching(specs), nil
}

func (r *RestaurantRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matching(specs))), nil
}
