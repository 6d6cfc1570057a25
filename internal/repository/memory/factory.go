package memory

import (
	"context"

	"winetour-be/internal/repository/contract"
	"winetour-be/internal/repository/unitofwork"
)

// Factory satisfies unitofwork.RepositoryFactory with shared in-memory
// repositories. Transactions are no-ops; every unit of work sees the same
// state, which is what the service tests want.
type Factory struct {
	Users         *UserRepository
	Trips         *TripRepository
	Vineyards     *VineyardRepository
	Restaurants   *RestaurantRepository
	PaymentOrders *PaymentOrderRepository
}

func NewFactory() *Factory {
	return &Factory{
		Users:         NewUserRepository(),
		Trips:         NewTripRepository(),
		Vineyards:     NewVineyardRepository(),
		Restaurants:   NewRestaurantRepository(),
		PaymentOrders: NewPaymentOrderRepository(),
	}
}

var _ unitofwork.RepositoryFactory = (*Factory)(nil)

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

type unitOfWork struct {
	factory *Factory
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return u.factory.Users
}

func (u *unitOfWork) TripRepository() contract.TripRepository {
	return u.factory.Trips
}

func (u *unitOfWork) VineyardRepository() contract.VineyardRepository {
	return u.factory.Vineyards
}

func (u *unitOfWork) RestaurantRepository() contract.RestaurantRepository {
	return u.factory.Restaurants
}

func (u *unitOfWork) PaymentOrderRepository() contract.PaymentOrderRepository {
	return u.factory.PaymentOrders
}
