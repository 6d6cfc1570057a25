package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"os"
	"time"

	"winetour-be/internal/dto"
	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/pkg/logger"
	"winetour-be/internal/repository/specification"
	"winetour-be/internal/repository/unitofwork"
	"winetour-be/pkg/events"
	pktNats "winetour-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	accessService  IAccessService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	accessService IAccessService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		accessService:  accessService,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	tier := entity.Tier(req.Tier)
	if !tier.Valid() {
		return nil, apperror.Validation("unknown tier " + req.Tier)
	}
	if !tier.IsPaid() {
		return nil, apperror.Validation("the free tier does not require checkout")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("user not found")
	}

	order := &entity.PaymentOrder{
		Id:        uuid.New(),
		UserId:    userId,
		Tier:      tier,
		Amount:    tier.Price(),
		Status:    entity.PaymentStatusPending,
		CreatedAt: time.Now(),
	}
	if err := uow.PaymentOrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	// External call stays outside any DB transaction.
	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	finishRedirectURL := fmt.Sprintf("%s/app?payment=success", os.Getenv("FRONTEND_URL"))

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.Id.String(),
			GrossAmt: int64(order.Amount),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    string(tier),
				Price: int64(order.Amount),
				Qty:   1,
				Name:  fmt.Sprintf("WineTour %s tier", tier),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, apperror.Internal(fmt.Errorf("midtrans error: %v", midErr.GetMessage()))
	}

	return &dto.CheckoutResponse{
		OrderId:         order.Id.String(),
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return apperror.Internal(fmt.Errorf("MIDTRANS_SERVER_KEY not configured"))
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.log.Warn("payment", "webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return apperror.Unauthorized("invalid signature")
	}

	orderId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return apperror.Validation("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.PaymentOrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NotFound("payment order not found")
	}

	// Replayed notifications for a finished order are acknowledged silently.
	if order.Status != entity.PaymentStatusPending {
		return nil
	}

	now := time.Now()
	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.FraudStatus == "challenge" || req.FraudStatus == "deny" {
			order.Status = entity.PaymentStatusFailed
			order.UpdatedAt = &now
			return uow.PaymentOrderRepository().Update(ctx, order)
		}

		order.Status = entity.PaymentStatusSettled
		order.UpdatedAt = &now
		if err := uow.PaymentOrderRepository().Update(ctx, order); err != nil {
			return err
		}
		if err := s.accessService.ActivateTier(ctx, order.UserId, order.Tier); err != nil {
			return err
		}

		if s.eventPublisher != nil {
			evt := events.NewEvent(events.TypePaymentSettled, map[string]interface{}{
				"order_id": order.Id,
				"user_id":  order.UserId,
				"tier":     string(order.Tier),
				"amount":   order.Amount,
			})
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.log.Warn("payment", "failed to publish settlement event", map[string]interface{}{
					"order_id": order.Id,
					"error":    err.Error(),
				})
			}
		}
		return nil

	case "deny", "cancel", "expire", "failure":
		order.Status = entity.PaymentStatusFailed
		order.UpdatedAt = &now
		return uow.PaymentOrderRepository().Update(ctx, order)

	default:
		// pending and other intermediate states need no action
		return nil
	}
}
