package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"heartgift-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	mu          sync.Mutex
	receipts    []string
	failures    []string
	receiptErrs int // number of SendGiftReceipt calls to fail before succeeding
}

func (m *captureMailer) SendGiftReceipt(toEmail, recipientName, shareURL, qrCodeURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.receiptErrs > 0 {
		m.receiptErrs--
		return errors.New("smtp unavailable")
	}
	m.receipts = append(m.receipts, toEmail)
	return nil
}

func (m *captureMailer) SendPaymentFailed(toEmail, recipientName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, toEmail)
	return nil
}

func (m *captureMailer) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.receipts), len(m.failures)
}

func publishEventJSON(t *testing.T, ps *gochannel.GoChannel, topic string, event events.BaseEvent) {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	require.NoError(t, ps.Publish(topic, message.NewMessage(watermill.NewUUID(), body)))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func newConsumerFixture(t *testing.T, mail *captureMailer) *gochannel.GoChannel {
	t.Helper()
	ps := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = ps.Close() })

	cs := NewConsumerService(ps, "gift.events.test", mail, nil, nopLogger{})
	require.NoError(t, cs.Consume(context.Background()))
	return ps
}

func TestConsumerSendsReceiptOnApproval(t *testing.T) {
	mail := &captureMailer{}
	ps := newConsumerFixture(t, mail)

	publishEventJSON(t, ps, "gift.events.test", events.BaseEvent{
		Type: events.TypePaymentApproved,
		Data: map[string]interface{}{
			"giftId":        "g-1",
			"email":         "joao@example.com",
			"recipientName": "Maria",
			"shareUrl":      "https://heartgift.app/presente/g-1",
			"qrCodeUrl":     "https://api.qrserver.com/v1/create-qr-code/?size=400x400",
		},
		OccurredAt: time.Now(),
	})

	waitFor(t, func() bool { r, _ := mail.counts(); return r == 1 })
	assert.Equal(t, []string{"joao@example.com"}, mail.receipts)
}

func TestConsumerSkipsReceiptWithoutEmail(t *testing.T) {
	mail := &captureMailer{}
	ps := newConsumerFixture(t, mail)

	publishEventJSON(t, ps, "gift.events.test", events.BaseEvent{
		Type:       events.TypePaymentApproved,
		Data:       map[string]interface{}{"giftId": "g-1"},
		OccurredAt: time.Now(),
	})
	// A later event with an address proves the first one was consumed.
	publishEventJSON(t, ps, "gift.events.test", events.BaseEvent{
		Type: events.TypePaymentRejected,
		Data: map[string]interface{}{
			"giftId": "g-2",
			"email":  "ana@example.com",
		},
		OccurredAt: time.Now(),
	})

	waitFor(t, func() bool { _, f := mail.counts(); return f == 1 })
	r, _ := mail.counts()
	assert.Zero(t, r)
	assert.Equal(t, []string{"ana@example.com"}, mail.failures)
}

func TestConsumerRetriesFailedReceipt(t *testing.T) {
	mail := &captureMailer{receiptErrs: 1}
	ps := newConsumerFixture(t, mail)

	publishEventJSON(t, ps, "gift.events.test", events.BaseEvent{
		Type: events.TypePaymentApproved,
		Data: map[string]interface{}{
			"giftId":        "g-1",
			"email":         "joao@example.com",
			"recipientName": "Maria",
		},
		OccurredAt: time.Now(),
	})

	// The first delivery is nacked; gochannel redelivers and the retry lands.
	waitFor(t, func() bool { r, _ := mail.counts(); return r == 1 })
}

func TestConsumerDropsMalformedPayload(t *testing.T) {
	mail := &captureMailer{}
	ps := newConsumerFixture(t, mail)

	require.NoError(t, ps.Publish("gift.events.test", message.NewMessage(watermill.NewUUID(), []byte("{not json"))))

	publishEventJSON(t, ps, "gift.events.test", events.BaseEvent{
		Type: events.TypePaymentRejected,
		Data: map[string]interface{}{
			"giftId": "g-2",
			"email":  "ana@example.com",
		},
		OccurredAt: time.Now(),
	})

	waitFor(t, func() bool { _, f := mail.counts(); return f == 1 })
}
