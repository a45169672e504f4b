// FILE: internal/service/payment_service_test.go
package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"
	"time"

	"heartgift-be/internal/dto"
	"heartgift-be/internal/entity"
	"heartgift-be/internal/repository/memory"
	"heartgift-be/pkg/payment"
	"heartgift-be/pkg/qrserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedNotification struct {
	giftId, paymentId, status string
}

type captureNotifier struct {
	calls []capturedNotification
}

func (n *captureNotifier) NotifyPaymentStatus(giftId, paymentId, status string) {
	n.calls = append(n.calls, capturedNotification{giftId, paymentId, status})
}

func seedPendingGift(t *testing.T, factory *memory.Factory, tier entity.PlanTier) *entity.GiftConfiguration {
	t.Helper()
	gift := &entity.GiftConfiguration{
		Theme:         entity.ThemeCouple,
		RecipientName: "Maria",
		SenderName:    "João",
		Message:       "Te amo!",
		SpecialDate:   time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC),
		PlanTier:      tier,
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	repo := factory.NewUnitOfWork(context.Background()).GiftRepository()
	require.NoError(t, repo.Create(context.Background(), gift))
	return gift
}

func newTestPaymentService(factory *memory.Factory, gw payment.Gateway, notifier PaymentNotifier, serverKey string) IPaymentService {
	return NewPaymentService(
		factory,
		NewPlanService(),
		gw,
		qrserver.NewClient("https://heartgift.app"),
		nil, // redis
		nil, // event bus
		"gift.events",
		notifier,
		serverKey,
		2*time.Second,
		nopLogger{},
	)
}

// countingGateway records how often Authorize runs before delegating.
type countingGateway struct {
	inner payment.Gateway
	calls int
}

func (g *countingGateway) Authorize(ctx context.Context, orderId string, tier entity.PlanTier, amountBRL float64) (*payment.Authorization, error) {
	g.calls++
	return g.inner.Authorize(ctx, orderId, tier, amountBRL)
}

// stallGateway never answers; it only honors the caller's deadline.
type stallGateway struct{}

func (stallGateway) Authorize(ctx context.Context, orderId string, tier entity.PlanTier, amountBRL float64) (*payment.Authorization, error) {
	<-ctx.Done()
	return nil, entity.ErrGatewayTimeout
}

func TestCheckoutApproved(t *testing.T) {
	factory := memory.NewFactory()
	notifier := &captureNotifier{}
	s := newTestPaymentService(factory, payment.NewSandboxGateway(), notifier, "key")

	gift := seedPendingGift(t, factory, entity.TierPremium)

	res, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	require.NoError(t, err)

	assert.Equal(t, "approved", res.PaymentStatus)
	assert.Equal(t, 19.90, res.AmountBRL)
	assert.NotEmpty(t, res.PaymentId)
	assert.Equal(t, "https://heartgift.app/presente/"+gift.Id.String(), res.ShareURL)

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "approved", status.PaymentStatus)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "approved", notifier.calls[0].status)
}

func TestCheckoutIdempotentAfterApproval(t *testing.T) {
	factory := memory.NewFactory()
	s := newTestPaymentService(factory, payment.NewSandboxGateway(), nil, "key")

	gift := seedPendingGift(t, factory, entity.TierDeluxe)

	first, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	require.NoError(t, err)

	second, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	require.NoError(t, err)

	assert.Equal(t, first.PaymentId, second.PaymentId, "replays must not re-authorize")
	assert.Equal(t, "approved", second.PaymentStatus)
}

func TestCheckoutRejected(t *testing.T) {
	factory := memory.NewFactory()
	gw := payment.NewSandboxGateway()
	gw.RejectTiers = []entity.PlanTier{entity.TierBasic}
	s := newTestPaymentService(factory, gw, nil, "key")

	gift := seedPendingGift(t, factory, entity.TierBasic)

	res, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	require.NoError(t, err, "a declined card is an outcome, not an error")

	assert.Equal(t, "rejected", res.PaymentStatus)
	assert.Empty(t, res.ShareURL, "rejected payments never expose the share link")

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "rejected", status.PaymentStatus)
}

func TestCheckoutOrderIdResolvesThroughWebhook(t *testing.T) {
	factory := memory.NewFactory()
	s := newTestPaymentService(factory, payment.NewSandboxGateway(), nil, "server-key")

	gift := seedPendingGift(t, factory, entity.TierPremium)

	res, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	require.NoError(t, err)
	assert.Equal(t, "gift-"+gift.Id.String(), res.PaymentId,
		"the order id must carry the gift id so notifications find the record")

	// A provider notification for exactly that order id must land on the gift.
	req := &dto.MidtransWebhookRequest{
		OrderId:           res.PaymentId,
		TransactionId:     res.PaymentId,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "19.90",
	}
	signWebhook(req, "server-key")
	require.NoError(t, s.HandleNotification(context.Background(), req))

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "approved", status.PaymentStatus)
}

func TestCheckoutAfterRejectionDoesNotReauthorize(t *testing.T) {
	factory := memory.NewFactory()
	sandbox := payment.NewSandboxGateway()
	sandbox.RejectTiers = []entity.PlanTier{entity.TierBasic}
	gw := &countingGateway{inner: sandbox}
	s := newTestPaymentService(factory, gw, nil, "key")

	gift := seedPendingGift(t, factory, entity.TierBasic)

	first, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	require.NoError(t, err)
	require.Equal(t, "rejected", first.PaymentStatus)

	// Even with the gateway now approving, a terminal record returns its
	// recorded outcome without charging the card again.
	sandbox.RejectTiers = nil
	second, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	require.NoError(t, err)

	assert.Equal(t, 1, gw.calls, "no authorization after a terminal outcome")
	assert.Equal(t, "rejected", second.PaymentStatus)
	assert.Empty(t, second.ShareURL)

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "rejected", status.PaymentStatus)
}

func TestCheckoutAuthorizationDeadline(t *testing.T) {
	factory := memory.NewFactory()
	s := NewPaymentService(
		factory,
		NewPlanService(),
		stallGateway{},
		qrserver.NewClient("https://heartgift.app"),
		nil,
		nil,
		"gift.events",
		nil,
		"key",
		20*time.Millisecond,
		nopLogger{},
	)

	gift := seedPendingGift(t, factory, entity.TierPremium)

	start := time.Now()
	_, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	assert.ErrorIs(t, err, entity.ErrGatewayTimeout)
	assert.Less(t, time.Since(start), 2*time.Second, "the configured deadline must cut the call short")

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "pending", status.PaymentStatus, "a timed-out authorization must not advance the flow")
}

func TestCheckoutGatewayUnavailableKeepsPending(t *testing.T) {
	factory := memory.NewFactory()
	gw := payment.NewSandboxGateway()
	gw.Unavailable = true
	s := newTestPaymentService(factory, gw, nil, "key")

	gift := seedPendingGift(t, factory, entity.TierPremium)

	_, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	assert.ErrorIs(t, err, entity.ErrGatewayUnavailable)

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "pending", status.PaymentStatus, "outage must not advance the flow")
}

func TestCheckoutUnknownGift(t *testing.T) {
	s := newTestPaymentService(memory.NewFactory(), payment.NewSandboxGateway(), nil, "key")

	gift := seedPendingGift(t, memory.NewFactory(), entity.TierPremium) // different store
	_, err := s.Checkout(context.Background(), &dto.CheckoutRequest{GiftId: gift.Id})
	assert.ErrorIs(t, err, entity.ErrGiftNotFound)
}

func signWebhook(req *dto.MidtransWebhookRequest, serverKey string) {
	raw := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	req.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(raw)))
}

func TestWebhookSettlementApproves(t *testing.T) {
	factory := memory.NewFactory()
	notifier := &captureNotifier{}
	s := newTestPaymentService(factory, payment.NewSandboxGateway(), notifier, "server-key")

	gift := seedPendingGift(t, factory, entity.TierPremium)

	req := &dto.MidtransWebhookRequest{
		OrderId:           "gift-" + gift.Id.String(),
		TransactionId:     "mid-123",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "19.90",
	}
	signWebhook(req, "server-key")

	require.NoError(t, s.HandleNotification(context.Background(), req))

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "approved", status.PaymentStatus)
	assert.Equal(t, "mid-123", status.PaymentId)

	// Midtrans retries notifications; replays must be harmless.
	require.NoError(t, s.HandleNotification(context.Background(), req))
	require.Len(t, notifier.calls, 2)
}

func TestWebhookDenyRejects(t *testing.T) {
	factory := memory.NewFactory()
	s := newTestPaymentService(factory, payment.NewSandboxGateway(), nil, "server-key")

	gift := seedPendingGift(t, factory, entity.TierBasic)

	req := &dto.MidtransWebhookRequest{
		OrderId:           "gift-" + gift.Id.String(),
		TransactionId:     "mid-456",
		TransactionStatus: "deny",
		StatusCode:        "202",
		GrossAmount:       "9.90",
	}
	signWebhook(req, "server-key")

	require.NoError(t, s.HandleNotification(context.Background(), req))

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "rejected", status.PaymentStatus)
}

func TestWebhookBadSignature(t *testing.T) {
	factory := memory.NewFactory()
	s := newTestPaymentService(factory, payment.NewSandboxGateway(), nil, "server-key")

	gift := seedPendingGift(t, factory, entity.TierPremium)

	req := &dto.MidtransWebhookRequest{
		OrderId:           "gift-" + gift.Id.String(),
		TransactionId:     "mid-789",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "19.90",
		SignatureKey:      "forged",
	}

	err := s.HandleNotification(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "pending", status.PaymentStatus)
}

func TestWebhookPendingIsNoop(t *testing.T) {
	factory := memory.NewFactory()
	s := newTestPaymentService(factory, payment.NewSandboxGateway(), nil, "server-key")

	gift := seedPendingGift(t, factory, entity.TierPremium)

	req := &dto.MidtransWebhookRequest{
		OrderId:           "gift-" + gift.Id.String(),
		TransactionId:     "mid-000",
		TransactionStatus: "pending",
		StatusCode:        "201",
		GrossAmount:       "19.90",
	}
	signWebhook(req, "server-key")

	require.NoError(t, s.HandleNotification(context.Background(), req))

	status, err := s.GetStatus(context.Background(), gift.Id)
	require.NoError(t, err)
	assert.Equal(t, "pending", status.PaymentStatus)
}
