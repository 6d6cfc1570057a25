package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSettled PaymentStatus = "settled"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentOrder tracks one checkout attempt for a paid tier. Its id doubles
// as the Midtrans order id, which is how the webhook finds its way back.
type PaymentOrder struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Tier      Tier
	Amount    float64
	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
}
