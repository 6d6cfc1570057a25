package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentOrder struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tier      string    `gorm:"type:varchar(50);not null"`
	Amount    float64   `gorm:"not null"`
	Status    string    `gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
