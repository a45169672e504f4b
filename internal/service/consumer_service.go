// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"heartgift-be/internal/pkg/logger"
	"heartgift-be/internal/pkg/mailer"
	"heartgift-be/pkg/events"
	pktNats "heartgift-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process event topic. Payment outcomes fan
// out to the receipt email and, when a NATS connection exists, to the
// external event stream.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	natsPub      *pktNats.Publisher // nil when NATS is not configured
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		natsPub:      natsPub,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("consumer_service", "malformed event payload", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid; drop
		return
	}

	switch event.Type {
	case events.TypePaymentApproved:
		if !cs.handlePaymentApproved(ctx, event) {
			msg.Nack()
			return
		}
	case events.TypePaymentRejected:
		cs.handlePaymentRejected(event)
	case events.TypeGiftFinalized:
		// Nothing to do in-process; mirrored below.
	default:
		cs.logger.Warn("consumer_service", "unknown event type", map[string]interface{}{
			"type": event.Type,
		})
	}

	cs.mirrorToNats(ctx, event)
	msg.Ack()
}

func (cs *consumerService) handlePaymentApproved(_ context.Context, event events.BaseEvent) bool {
	email := stringField(event.Data, "email")
	if email == "" {
		// Checkout without a receipt address, or a webhook-driven update.
		return true
	}

	err := cs.emailService.SendGiftReceipt(
		email,
		stringField(event.Data, "recipientName"),
		stringField(event.Data, "shareUrl"),
		stringField(event.Data, "qrCodeUrl"),
	)
	if err != nil {
		cs.logger.Error("consumer_service", "receipt email failed", map[string]interface{}{
			"giftId": stringField(event.Data, "giftId"),
			"error":  err.Error(),
		})
		return false // retriable
	}
	return true
}

func (cs *consumerService) handlePaymentRejected(event events.BaseEvent) {
	email := stringField(event.Data, "email")
	if email == "" {
		return
	}
	if err := cs.emailService.SendPaymentFailed(email, stringField(event.Data, "recipientName")); err != nil {
		// Best effort; the client already saw the rejection.
		cs.logger.Warn("consumer_service", "rejection email failed", map[string]interface{}{
			"giftId": stringField(event.Data, "giftId"),
			"error":  err.Error(),
		})
	}
}

func (cs *consumerService) mirrorToNats(ctx context.Context, event events.BaseEvent) {
	if cs.natsPub == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cs.natsPub.Publish(pubCtx, event); err != nil {
		cs.logger.Warn("consumer_service", "nats mirror failed", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
