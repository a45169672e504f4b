// FILE: internal/websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"heartgift-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const redisChannel = "gift_payment_events"

// Hub tracks viewers per gift. A gift page opens one connection and waits
// for the payment outcome; multiple tabs on the same gift are normal.
type Hub struct {
	// GiftID -> connected viewers
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil in single-node runs.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.GiftID] = append(h.clients[client.GiftID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "viewer connected", map[string]interface{}{"gift_id": client.GiftID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.GiftID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.GiftID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.GiftID]) == 0 {
					delete(h.clients, client.GiftID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyPaymentStatus pushes the new payment status to every viewer of the
// gift, locally and via redis to other instances.
func (h *Hub) NotifyPaymentStatus(giftId, paymentId, status string) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "payment_status",
		"data": map[string]string{
			"giftId":        giftId,
			"paymentId":     paymentId,
			"paymentStatus": status,
		},
	})

	h.sendLocal(giftId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_gift_id": giftId,
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), redisChannel, payload)
	}
}

func (h *Hub) sendLocal(giftId string, data []byte) {
	h.mu.RLock()
	clients := h.clients[giftId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Only the unregister path closes Send, so a slow viewer is
			// dropped without racing a second close.
			h.logger.Warn("Hub", "viewer send buffer full, dropping connection", map[string]interface{}{"gift_id": giftId})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetGiftID string          `json:"target_gift_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "redis message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		h.sendLocal(payload.TargetGiftID, payload.Message)
	}
}
