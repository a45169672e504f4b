package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, nopLogger{})
	go h.Run()
	return h
}

func registerViewer(t *testing.T, h *Hub, giftId string, buffer int) *Client {
	t.Helper()
	client := &Client{Hub: h, GiftID: giftId, Send: make(chan []byte, buffer)}
	h.register <- client

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		registered := false
		for _, c := range h.clients[giftId] {
			if c == client {
				registered = true
			}
		}
		h.mu.RUnlock()
		if registered {
			return client
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("viewer was not registered in time")
	return nil
}

func TestHubNotifiesViewers(t *testing.T) {
	h := startHub(t)
	viewer := registerViewer(t, h, "gift-1", 4)

	h.NotifyPaymentStatus("gift-1", "pay-1", "approved")

	select {
	case raw := <-viewer.Send:
		var msg struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "payment_status", msg.Type)
		assert.Equal(t, "approved", msg.Data["paymentStatus"])
		assert.Equal(t, "pay-1", msg.Data["paymentId"])
	case <-time.After(time.Second):
		t.Fatal("viewer never received the status message")
	}
}

func TestHubDropsSlowViewer(t *testing.T) {
	h := startHub(t)
	slow := registerViewer(t, h, "gift-1", 0)
	healthy := registerViewer(t, h, "gift-1", 4)

	// The slow viewer has no reader and no buffer; dropping it must not
	// panic and must not disturb the healthy one.
	h.NotifyPaymentStatus("gift-1", "pay-1", "approved")

	select {
	case _, ok := <-slow.Send:
		assert.False(t, ok, "the dropped viewer's channel closes exactly once")
	case <-time.After(time.Second):
		t.Fatal("slow viewer was never dropped")
	}

	select {
	case <-healthy.Send:
	case <-time.After(time.Second):
		t.Fatal("healthy viewer missed the status message")
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		n := len(h.clients["gift-1"])
		h.mu.RUnlock()
		if n == 1 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("slow viewer still registered")
}
