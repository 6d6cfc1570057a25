package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Trip persists the itinerary as a single row: the vineyard stops, the
// optional restaurant slot and the custom order are JSONB documents, so one
// conditional UPDATE replaces all three together and a reader can never see
// them mutually inconsistent.
type Trip struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"type:varchar(255)"`
	Vineyards   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	Restaurant  datatypes.JSON `gorm:"type:jsonb"`
	CustomOrder datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	Status      string         `gorm:"type:varchar(50);not null;default:'draft'"`
	Version     int            `gorm:"not null;default:1"`
	ConfirmedAt *time.Time
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	// Soft delete: an inactive trip is invisible to every read path but
	// physically retained.
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Trip) TableName() string {
	return "trips"
}
