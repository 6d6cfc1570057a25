package mapper

import (
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/model"
)

type RestaurantMapper struct{}

func NewRestaurantMapper() *RestaurantMapper {
	return &RestaurantMapper{}
}

func (m *RestaurantMapper) ToEntity(r *model.Restaurant) *entity.Restaurant {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		u := r.UpdatedAt
		updatedAt = &u
	}

	return &entity.Restaurant{
		Id:          r.Id,
		Name:        r.Name,
		Region:      r.Region,
		Address:     r.Address,
		Cuisine:     r.Cuisine,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *RestaurantMapper) ToModel(r *entity.Restaurant) *model.Restaurant {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Restaurant{
		Id:          r.Id,
		Name:        r.Name,
		Region:      r.Region,
		Address:     r.Address,
		Cuisine:     r.Cuisine,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *RestaurantMapper) ToEntities(restaurants []*model.Restaurant) []*entity.Restaurant {
	entities := make([]*entity.Restaurant, len(restaurants))
	for i, r := range restaurants {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
