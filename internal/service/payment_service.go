// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"heartgift-be/internal/dto"
	"heartgift-be/internal/entity"
	"heartgift-be/internal/pkg/logger"
	"heartgift-be/internal/repository/specification"
	"heartgift-be/internal/repository/unitofwork"
	"heartgift-be/pkg/events"
	"heartgift-be/pkg/payment"
	"heartgift-be/pkg/qrserver"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type IPaymentService interface {
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	GetStatus(ctx context.Context, giftId uuid.UUID) (*dto.PaymentStatusResponse, error)
}

// PaymentNotifier pushes live status changes to connected viewers; the
// websocket hub implements it.
type PaymentNotifier interface {
	NotifyPaymentStatus(giftId, paymentId, status string)
}

type paymentService struct {
	uowFactory  unitofwork.RepositoryFactory
	planService IPlanService
	gateway     payment.Gateway
	qr          *qrserver.Client
	cache       *redis.Client
	pubSub      *gochannel.GoChannel
	topicName   string
	notifier    PaymentNotifier
	serverKey   string
	authTimeout time.Duration
	logger      logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	planService IPlanService,
	gateway payment.Gateway,
	qr *qrserver.Client,
	cache *redis.Client,
	pubSub *gochannel.GoChannel,
	topicName string,
	notifier PaymentNotifier,
	serverKey string,
	authTimeout time.Duration,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:  uowFactory,
		planService: planService,
		gateway:     gateway,
		qr:          qr,
		cache:       cache,
		pubSub:      pubSub,
		topicName:   topicName,
		notifier:    notifier,
		serverKey:   serverKey,
		authTimeout: authTimeout,
		logger:      log,
	}
}

// Checkout authorizes the gift's plan price and records the outcome. A
// gateway failure leaves the gift pending; a declined authorization records
// rejected. Neither advances the gift to a shareable state.
func (s *paymentService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	gift, err := uow.GiftRepository().FindOne(ctx, specification.ByID{ID: req.GiftId})
	if err != nil {
		return nil, err
	}
	if gift == nil {
		return nil, entity.ErrGiftNotFound
	}

	ent, err := s.planService.EntitlementsFor(gift.PlanTier)
	if err != nil {
		return nil, err
	}

	// Re-submitting after approval is a no-op: return the recorded outcome.
	if gift.PaymentStatus == entity.PaymentStatusApproved {
		return &dto.CheckoutResponse{
			GiftId:        gift.Id,
			PaymentId:     gift.PaymentId,
			PaymentStatus: string(gift.PaymentStatus),
			AmountBRL:     ent.PriceBRL,
			ShareURL:      s.qr.ShareURL(gift.Id.String()),
		}, nil
	}

	// Rejected is terminal server-side; return the recorded outcome before
	// any authorization so the card is never charged against a dead record.
	if gift.PaymentStatus == entity.PaymentStatusRejected {
		return &dto.CheckoutResponse{
			GiftId:        gift.Id,
			PaymentId:     gift.PaymentId,
			PaymentStatus: string(gift.PaymentStatus),
			AmountBRL:     ent.PriceBRL,
		}, nil
	}

	// The order id is derived from the gift id so provider notifications can
	// be correlated back to the record they settle.
	orderId := fmt.Sprintf("gift-%s", gift.Id)

	authCtx := ctx
	if s.authTimeout > 0 {
		var cancel context.CancelFunc
		authCtx, cancel = context.WithTimeout(ctx, s.authTimeout)
		defer cancel()
	}

	auth, err := s.gateway.Authorize(authCtx, orderId, gift.PlanTier, ent.PriceBRL)
	if err != nil {
		// Unavailable or timed out: the gift stays pending, retry later.
		s.logger.Warn("payment_service", "authorization failed", map[string]interface{}{
			"giftId": gift.Id.String(),
			"error":  err.Error(),
		})
		return nil, err
	}

	status := entity.PaymentStatusRejected
	if auth.Status == payment.StatusApproved {
		status = entity.PaymentStatusApproved
	}

	if err := uow.GiftRepository().UpdatePaymentStatus(ctx, gift.Id, auth.PaymentID, status); err != nil {
		return nil, err
	}

	s.afterStatusChange(ctx, gift, auth.PaymentID, status, req.Email)

	res := &dto.CheckoutResponse{
		GiftId:        gift.Id,
		PaymentId:     auth.PaymentID,
		PaymentStatus: string(status),
		AmountBRL:     ent.PriceBRL,
	}
	if status == entity.PaymentStatusApproved {
		res.ShareURL = s.qr.ShareURL(gift.Id.String())
	}
	return res, nil
}

// HandleNotification processes a Midtrans webhook. The signature is
// SHA512(order_id + status_code + gross_amount + server key); anything else
// is dropped. Repeated notifications are harmless: the status update is
// idempotent.
func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if !s.validSignature(req) {
		return entity.ErrInvalidCredentials
	}

	giftId, err := giftIdFromOrderId(req.OrderId)
	if err != nil {
		s.logger.Warn("payment_service", "webhook for unknown order", map[string]interface{}{
			"orderId": req.OrderId,
		})
		return nil // not ours; acknowledge so Midtrans stops retrying
	}

	var status entity.PaymentStatus
	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.FraudStatus == "challenge" || req.FraudStatus == "deny" {
			status = entity.PaymentStatusRejected
		} else {
			status = entity.PaymentStatusApproved
		}
	case "deny", "cancel", "expire", "failure":
		status = entity.PaymentStatusRejected
	default:
		// "pending" and friends carry no state change.
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	gift, err := uow.GiftRepository().FindOne(ctx, specification.ByID{ID: giftId})
	if err != nil {
		return err
	}
	if gift == nil {
		return entity.ErrGiftNotFound
	}

	if err := uow.GiftRepository().UpdatePaymentStatus(ctx, giftId, req.TransactionId, status); err != nil {
		return err
	}

	s.afterStatusChange(ctx, gift, req.TransactionId, status, "")
	return nil
}

func (s *paymentService) GetStatus(ctx context.Context, giftId uuid.UUID) (*dto.PaymentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	gift, err := uow.GiftRepository().FindOne(ctx, specification.ByID{ID: giftId})
	if err != nil {
		return nil, err
	}
	if gift == nil {
		return nil, entity.ErrGiftNotFound
	}
	return &dto.PaymentStatusResponse{
		GiftId:        gift.Id,
		PaymentId:     gift.PaymentId,
		PaymentStatus: string(gift.PaymentStatus),
	}, nil
}

// afterStatusChange fans the outcome out: cache invalidation, domain event,
// live websocket notification. All best-effort; the status is already saved.
func (s *paymentService) afterStatusChange(ctx context.Context, gift *entity.GiftConfiguration, paymentId string, status entity.PaymentStatus, email string) {
	if s.cache != nil {
		if err := s.cache.Del(ctx, giftCacheKey(gift.Id)).Err(); err != nil {
			s.logger.Warn("payment_service", "cache invalidation failed", map[string]interface{}{
				"giftId": gift.Id.String(),
				"error":  err.Error(),
			})
		}
	}

	eventType := events.TypePaymentRejected
	if status == entity.PaymentStatusApproved {
		eventType = events.TypePaymentApproved
	}
	s.publishEvent(eventType, map[string]interface{}{
		"giftId":        gift.Id.String(),
		"paymentId":     paymentId,
		"recipientName": gift.RecipientName,
		"email":         email,
		"shareUrl":      s.qr.ShareURL(gift.Id.String()),
		"qrCodeUrl":     gift.QRCodeURL,
	})

	if s.notifier != nil {
		s.notifier.NotifyPaymentStatus(gift.Id.String(), paymentId, string(status))
	}
}

func (s *paymentService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.pubSub == nil {
		return
	}
	body, err := json.Marshal(events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	if err := s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), body)); err != nil {
		s.logger.Warn("payment_service", "event publish failed", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func (s *paymentService) validSignature(req *dto.MidtransWebhookRequest) bool {
	raw := req.OrderId + req.StatusCode + req.GrossAmount + s.serverKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(raw)))
	return expected == req.SignatureKey
}

func giftIdFromOrderId(orderId string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(orderId, "gift-"))
}
