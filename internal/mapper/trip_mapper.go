package mapper

import (
	"encoding/json"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TripMapper struct{}

func NewTripMapper() *TripMapper {
	return &TripMapper{}
}

func (m *TripMapper) ToEntity(t *model.Trip) (*entity.Trip, error) {
	if t == nil {
		return nil, nil
	}

	var vineyards []entity.VineyardStop
	if len(t.Vineyards) > 0 {
		if err := json.Unmarshal(t.Vineyards, &vineyards); err != nil {
			return nil, err
		}
	}

	var restaurant *entity.RestaurantStop
	if len(t.Restaurant) > 0 && string(t.Restaurant) != "null" {
		restaurant = &entity.RestaurantStop{}
		if err := json.Unmarshal(t.Restaurant, restaurant); err != nil {
			return nil, err
		}
	}

	var order []entity.OrderEntry
	if len(t.CustomOrder) > 0 {
		if err := json.Unmarshal(t.CustomOrder, &order); err != nil {
			return nil, err
		}
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Trip{
		Id:          t.Id,
		UserId:      t.UserId,
		Title:       t.Title,
		Vineyards:   vineyards,
		Restaurant:  restaurant,
		CustomOrder: order,
		Status:      entity.TripStatus(t.Status),
		IsActive:    !t.DeletedAt.Valid,
		Version:     t.Version,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
		ConfirmedAt: t.ConfirmedAt,
		ExpiresAt:   t.ExpiresAt,
	}, nil
}

func (m *TripMapper) ToModel(t *entity.Trip) (*model.Trip, error) {
	if t == nil {
		return nil, nil
	}

	vineyards := t.Vineyards
	if vineyards == nil {
		vineyards = []entity.VineyardStop{}
	}
	vineyardsJson, err := json.Marshal(vineyards)
	if err != nil {
		return nil, err
	}

	var restaurantJson datatypes.JSON
	if t.Restaurant != nil {
		raw, err := json.Marshal(t.Restaurant)
		if err != nil {
			return nil, err
		}
		restaurantJson = raw
	}

	order := t.CustomOrder
	if order == nil {
		order = []entity.OrderEntry{}
	}
	orderJson, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	var deletedAt gorm.DeletedAt
	if !t.IsActive {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.Trip{
		Id:          t.Id,
		UserId:      t.UserId,
		Title:       t.Title,
		Vineyards:   vineyardsJson,
		Restaurant:  restaurantJson,
		CustomOrder: orderJson,
		Status:      string(t.Status),
		Version:     t.Version,
		ConfirmedAt: t.ConfirmedAt,
		ExpiresAt:   t.ExpiresAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}, nil
}

func (m *TripMapper) ToEntities(trips []*model.Trip) ([]*entity.Trip, error) {
	entities := make([]*entity.Trip, len(trips))
	for i, t := range trips {
		e, err := m.ToEntity(t)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
