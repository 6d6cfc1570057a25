package implementation

import (
	"context"
	"errors"

	"winetour-be/internal/entity"
	"winetour-be/internal/mapper"
	"winetour-be/internal/model"
	"winetour-be/internal/repository/contract"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestaurantRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RestaurantMapper
}

func NewRestaurantRepository(db *gorm.DB) contract.RestaurantRepository {
	return &RestaurantRepositoryImpl{
		db:     db,
		mapper: mapper.NewRestaurantMapper(),
	}
}

func (r *RestaurantRepositoryImpl) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m := r.mapper.ToModel(restaurant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err)
	}
	*restaurant = *r.mapper.ToEntity(m)
	return nil
}

func (r *RestaurantRepositoryImpl) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m := r.mapper.ToModel(restaurant)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translate(err)
	}
	*restaurant = *r.mapper.ToEntity(m)
	return nil
}

func (r *RestaurantRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return translate(r.db.WithContext(ctx).Delete(&model.Restaurant{}, id).Error)
}

func (r *RestaurantRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Restaurant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var m model.Restaurant
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RestaurantRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Restaurant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var models []*model.Restaurant
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RestaurantRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Restaurant{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
