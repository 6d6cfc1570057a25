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

type VineyardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VineyardMapper
}

func NewVineyardRepository(db *gorm.DB) contract.VineyardRepository {
	return &VineyardRepositoryImpl{
		db:     db,
		mapper: mapper.NewVineyardMapper(),
	}
}

func (r *VineyardRepositoryImpl) Create(ctx context.Context, vineyard *entity.Vineyard) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m := r.mapper.ToModel(vineyard)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err)
	}
	*vineyard = *r.mapper.ToEntity(m)
	return nil
}

func (r *VineyardRepositoryImpl) Update(ctx context.Context, vineyard *entity.Vineyard) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m := r.mapper.ToModel(vineyard)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translate(err)
	}
	*vineyard = *r.mapper.ToEntity(m)
	return nil
}

func (r *VineyardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return translate(r.db.WithContext(ctx).Delete(&model.Vineyard{}, id).Error)
}

func (r *VineyardRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Vineyard, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var m model.Vineyard
	query := applySpecifications(r.db.WithContext(ctx).Preload("Offers"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *VineyardRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Vineyard, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var models []*model.Vineyard
	query := applySpecifications(r.db.WithContext(ctx).Preload("Offers"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *VineyardRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Vineyard{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
