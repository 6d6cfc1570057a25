package implementation

import (
	"context"
	"errors"

	"winetour-be/internal/entity"
	"winetour-be/internal/model"
	"winetour-be/internal/repository/contract"
	"winetour-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PaymentOrderRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentOrderRepository(db *gorm.DB) contract.PaymentOrderRepository {
	return &PaymentOrderRepositoryImpl{db: db}
}

func toPaymentOrderModel(order *entity.PaymentOrder) *model.PaymentOrder {
	return &model.PaymentOrder{
		Id:        order.Id,
		UserId:    order.UserId,
		Tier:      string(order.Tier),
		Amount:    order.Amount,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func toPaymentOrderEntity(m *model.PaymentOrder) *entity.PaymentOrder {
	return &entity.PaymentOrder{
		Id:        m.Id,
		UserId:    m.UserId,
		Tier:      entity.Tier(m.Tier),
		Amount:    m.Amount,
		Status:    entity.PaymentStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *PaymentOrderRepositoryImpl) Create(ctx context.Context, order *entity.PaymentOrder) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m := toPaymentOrderModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err)
	}
	*order = *toPaymentOrderEntity(m)
	return nil
}

func (r *PaymentOrderRepositoryImpl) Update(ctx context.Context, order *entity.PaymentOrder) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m := toPaymentOrderModel(order)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translate(err)
	}
	*order = *toPaymentOrderEntity(m)
	return nil
}

func (r *PaymentOrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentOrder, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var m model.PaymentOrder
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return toPaymentOrderEntity(&m), nil
}
