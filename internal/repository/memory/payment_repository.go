package memory

import (
	"context"
	"sync"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/repository/contract"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*entity.PaymentOrder
}

func NewPaymentOrderRepository() *PaymentOrderRepository {
	return &PaymentOrderRepository{orders: make(map[uuid.UUID]*entity.PaymentOrder)}
}

var _ contract.PaymentOrderRepository = (*PaymentOrderRepository)(nil)

func (r *PaymentOrderRepository) Create(ctx context.Context, order *entity.PaymentOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.Id == uuid.Nil {
		order.Id = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	c := *order
	r.orders[order.Id] = &c
	return nil
}

func (r *PaymentOrderRepository) Update(ctx context.Context, order *entity.PaymentOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *order
	r.orders[order.Id] = &c
	return nil
}

func (r *PaymentOrderRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := parseSpecs(specs)
	for id, order := range r.orders {
		if !q.matchesID(id) {
			continue
		}
		if q.ownerId != nil && order.UserId != *q.ownerId {
			continue
		}
		c := *order
		return &c, nil
	}
	return nil, nil
}
