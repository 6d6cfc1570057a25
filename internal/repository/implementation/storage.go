package implementation

import (
	"context"
	"time"

	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/repository/specification"

	"gorm.io/gorm"
)

// storageTimeout bounds every storage call. No repository operation may block
// indefinitely; callers see STORAGE_UNAVAILABLE instead of a hang.
const storageTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storageTimeout)
}

// translate maps driver failures into the app taxonomy. Not-found is handled
// by the callers (nil entity); anything else from the driver is a storage
// failure and is wrapped rather than leaked.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.StorageUnavailable(err)
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}
