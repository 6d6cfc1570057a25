package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vineyard struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Region      string    `gorm:"type:varchar(255);index"`
	Address     string    `gorm:"type:text"`
	Description string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Offers []VineyardOffer `gorm:"foreignKey:VineyardId"`
}

func (Vineyard) TableName() string {
	return "vineyards"
}

type VineyardOffer struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VineyardId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Price      float64   `gorm:"type:decimal(10,2);not null"`
	IsActive   bool      `gorm:"default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (VineyardOffer) TableName() string {
	return "vineyard_offers"
}
