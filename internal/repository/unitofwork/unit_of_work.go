package unitofwork

import (
	"context"

	"winetour-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	TripRepository() contract.TripRepository
	VineyardRepository() contract.VineyardRepository
	RestaurantRepository() contract.RestaurantRepository
	PaymentOrderRepository() contract.PaymentOrderRepository
}
