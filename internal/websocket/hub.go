package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"qr-dine-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Notification is the envelope pushed to merchant dashboard sockets.
type Notification struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	// Registered clients map: MerchantID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.MerchantID] = append(h.clients[client.MerchantID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"merchant_id": client.MerchantID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.MerchantID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.MerchantID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.MerchantID]) == 0 {
					delete(h.clients, client.MerchantID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"merchant_id": client.MerchantID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a notification to all dashboard sessions of one merchant.
func (h *Hub) Send(merchantID uuid.UUID, notification Notification) {
	data, _ := json.Marshal(notification)

	h.mu.RLock()
	clients, localFound := h.clients[merchantID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"merchant_id": merchantID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	// Publish to Redis so sessions connected to other instances get it too.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_merchant_id": merchantID.String(),
			"message":            data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "cluster_events". When a message arrives,
	// deliver it to the target merchant's local sessions if any exist.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetMerchantID string          `json:"target_merchant_id"`
			Message          json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		mid, err := uuid.Parse(payload.TargetMerchantID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[mid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}
