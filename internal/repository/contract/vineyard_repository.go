package contract

import (
	"context"

	"winetour-be/internal/entity"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VineyardRepository interface {
	Create(ctx context.Context, vineyard *entity.Vineyard) error
	Update(ctx context.Context, vineyard *entity.Vineyard) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Vineyard, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Vineyard, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
