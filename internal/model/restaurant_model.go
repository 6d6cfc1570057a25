package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Restaurant struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Region      string    `gorm:"type:varchar(255);index"`
	Address     string    `gorm:"type:text"`
	Cuisine     string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
