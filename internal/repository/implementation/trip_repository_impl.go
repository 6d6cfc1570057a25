package implementation

import (
	"context"
	"errors"

	"winetour-be/internal/entity"
	"winetour-be/internal/mapper"
	"winetour-be/internal/model"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/repository/contract"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TripMapper
}

func NewTripRepository(db *gorm.DB) contract.TripRepository {
	return &TripRepositoryImpl{
		db:     db,
		mapper: mapper.NewTripMapper(),
	}
}

func (r *TripRepositoryImpl) Create(ctx context.Context, trip *entity.Trip) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m, err := r.mapper.ToModel(trip)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err)
	}

	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*trip = *e
	return nil
}

// Save is the optimistic write: a single conditional UPDATE guarded by the
// version the trip was loaded with. Vineyards, restaurant and custom order
// land together, so the store never holds a half-updated itinerary. Zero
// rows affected means another writer got there first.
func (r *TripRepositoryImpl) Save(ctx context.Context, trip *entity.Trip) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m, err := r.mapper.ToModel(trip)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&model.Trip{}).
		Where("id = ? AND version = ?", m.Id, trip.Version).
		Updates(map[string]interface{}{
			"title":        m.Title,
			"vineyards":    m.Vineyards,
			"restaurant":   m.Restaurant,
			"custom_order": m.CustomOrder,
			"status":       m.Status,
			"confirmed_at": m.ConfirmedAt,
			"expires_at":   m.ExpiresAt,
			"version":      trip.Version + 1,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.Conflict("trip was modified concurrently")
	}

	trip.Version++
	return nil
}

func (r *TripRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return translate(r.db.WithContext(ctx).Delete(&model.Trip{}, id).Error)
}

func (r *TripRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Trip, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var m model.Trip
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return r.mapper.ToEntity(&m)
}

func (r *TripRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Trip, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var models []*model.Trip
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	return r.mapper.ToEntities(models)
}

func (r *TripRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Trip{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
