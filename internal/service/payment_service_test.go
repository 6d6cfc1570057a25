package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"
	"time"

	"winetour-be/internal/dto"
	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-Mid-server-test"

func (f *fixture) seedPendingOrder(t *testing.T, userId uuid.UUID, tier entity.Tier) *entity.PaymentOrder {
	t.Helper()
	order := &entity.PaymentOrder{
		Id:        uuid.New(),
		UserId:    userId,
		Tier:      tier,
		Amount:    tier.Price(),
		Status:    entity.PaymentStatusPending,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.repos.PaymentOrders.Create(context.Background(), order))
	return order
}

func signedWebhook(order *entity.PaymentOrder, transactionStatus, fraudStatus string) *dto.MidtransWebhookRequest {
	statusCode := "200"
	grossAmount := fmt.Sprintf("%.2f", order.Amount)
	signature := fmt.Sprintf("%x", sha512.Sum512([]byte(order.Id.String()+statusCode+grossAmount+testServerKey)))
	return &dto.MidtransWebhookRequest{
		TransactionStatus: transactionStatus,
		OrderId:           order.Id.String(),
		FraudStatus:       fraudStatus,
		SignatureKey:      signature,
		StatusCode:        statusCode,
		GrossAmount:       grossAmount,
	}
}

func TestCheckoutValidatesTier(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "buyer@example.com")

	_, err := f.payment.Checkout(context.Background(), user.Id, &dto.CheckoutRequest{Tier: "free"})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)

	_, err = f.payment.Checkout(context.Background(), user.Id, &dto.CheckoutRequest{Tier: "diamond"})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)
}

func TestSettlementActivatesTier(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", testServerKey)
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "payer@example.com")
	order := f.seedPendingOrder(t, user.Id, entity.TierPremium)

	require.NoError(t, f.payment.HandleNotification(ctx, signedWebhook(order, "settlement", "")))

	stored, err := f.repos.PaymentOrders.FindOne(ctx, specification.ByID{ID: order.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSettled, stored.Status)

	resp, err := f.access.CheckAccess(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, resp.HasAccess)
	require.NotNil(t, resp.SelectedTier)
	assert.Equal(t, "premium", *resp.SelectedTier)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *resp.SubscriptionExpiresAt, time.Minute)
}

func TestSettlementReplayIsIgnored(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", testServerKey)
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "replay@example.com")
	order := f.seedPendingOrder(t, user.Id, entity.TierPlus)

	webhook := signedWebhook(order, "settlement", "")
	require.NoError(t, f.payment.HandleNotification(ctx, webhook))

	firstExpiry, err := f.access.CheckAccess(ctx, user.Id)
	require.NoError(t, err)

	// A replayed notification is acknowledged without reopening the window.
	require.NoError(t, f.payment.HandleNotification(ctx, webhook))
	secondExpiry, err := f.access.CheckAccess(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, *firstExpiry.SubscriptionExpiresAt, *secondExpiry.SubscriptionExpiresAt)
}

func TestFraudChallengeFailsOrder(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", testServerKey)
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "fraud@example.com")
	order := f.seedPendingOrder(t, user.Id, entity.TierPro)

	require.NoError(t, f.payment.HandleNotification(ctx, signedWebhook(order, "capture", "challenge")))

	stored, err := f.repos.PaymentOrders.FindOne(ctx, specification.ByID{ID: order.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, stored.Status)

	ok, err := f.access.HasAccess(ctx, user.Id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWebhookSignatureRejected(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", testServerKey)
	f := newFixture(t)
	user := f.seedUser(t, "spoof@example.com")
	order := f.seedPendingOrder(t, user.Id, entity.TierPlus)

	webhook := signedWebhook(order, "settlement", "")
	webhook.SignatureKey = "forged"
	err := f.payment.HandleNotification(context.Background(), webhook)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)
}

func TestExpiredTransactionFailsOrder(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", testServerKey)
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "lapsed@example.com")
	order := f.seedPendingOrder(t, user.Id, entity.TierPlus)

	require.NoError(t, f.payment.HandleNotification(ctx, signedWebhook(order, "expire", "")))

	stored, err := f.repos.PaymentOrders.FindOne(ctx, specification.ByID{ID: order.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, stored.Status)
}
