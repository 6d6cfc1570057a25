package contract

import (
	"context"

	"winetour-be/internal/entity"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
)

// TripRepository is the persistence boundary for trips. Soft-deleted trips
// are invisible to every finder. Save is a conditional write: it only
// persists when the stored version still matches trip.Version and bumps the
// version on success; a lost update surfaces as a CONFLICT AppError for the
// service layer to retry or report.
type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	Save(ctx context.Context, trip *entity.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error // soft delete
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Trip, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Trip, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
