package mapper

import (
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/model"
)

type VineyardMapper struct{}

func NewVineyardMapper() *VineyardMapper {
	return &VineyardMapper{}
}

func (m *VineyardMapper) ToEntity(v *model.Vineyard) *entity.Vineyard {
	if v == nil {
		return nil
	}

	var updatedAt *time.Time
	if !v.UpdatedAt.IsZero() {
		u := v.UpdatedAt
		updatedAt = &u
	}

	offers := make([]entity.VineyardOffer, len(v.Offers))
	for i, o := range v.Offers {
		offers[i] = entity.VineyardOffer{
			Id:         o.Id,
			VineyardId: o.VineyardId,
			Name:       o.Name,
			Price:      o.Price,
			IsActive:   o.IsActive,
			CreatedAt:  o.CreatedAt,
		}
	}

	return &entity.Vineyard{
		Id:          v.Id,
		Name:        v.Name,
		Region:      v.Region,
		Address:     v.Address,
		Description: v.Description,
		ImageURL:    v.ImageURL,
		IsActive:    v.IsActive,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   updatedAt,
		Offers:      offers,
	}
}

func (m *VineyardMapper) ToModel(v *entity.Vineyard) *model.Vineyard {
	if v == nil {
		return nil
	}

	var updatedAt time.Time
	if v.UpdatedAt != nil {
		updatedAt = *v.UpdatedAt
	}

	offers := make([]model.VineyardOffer, len(v.Offers))
	for i, o := range v.Offers {
		offers[i] = model.VineyardOffer{
			Id:         o.Id,
			VineyardId: o.VineyardId,
			Name:       o.Name,
			Price:      o.Price,
			IsActive:   o.IsActive,
			CreatedAt:  o.CreatedAt,
		}
	}

	return &model.Vineyard{
		Id:          v.Id,
		Name:        v.Name,
		Region:      v.Region,
		Address:     v.Address,
		Description: v.Description,
		ImageURL:    v.ImageURL,
		IsActive:    v.IsActive,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   updatedAt,
		Offers:      offers,
	}
}

func (m *VineyardMapper) ToEntities(vineyards []*model.Vineyard) []*entity.Vineyard {
	entities := make([]*entity.Vineyard, len(vineyards))
	for i, v := range vineyards {
		entities[i] = m.ToEntity(v)
	}
	return entities
}
