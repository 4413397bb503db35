package service

import (
	"context"

	"qr-dine-be/internal/pkg/logger"
	"qr-dine-be/internal/websocket"
	"qr-dine-be/pkg/events"
	pkgnats "qr-dine-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationService bridges the order event bus to the merchant dashboard
// websocket hub. It consumes durably, so dashboards that reconnect after a
// restart still see events published while the service was down.
type NotificationService struct {
	subscriber *pkgnats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewNotificationService(subscriber *pkgnats.Subscriber, hub *websocket.Hub, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

// Start registers the durable consumers. Non-blocking.
func (s *NotificationService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event bus configured, live notifications disabled", nil)
		return nil
	}
	return s.subscriber.Subscribe("events.>", "merchant-dashboard", s.handleEvent)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	merchantRaw, ok := payload["merchant_id"].(string)
	if !ok {
		return nil
	}
	merchantId, err := uuid.Parse(merchantRaw)
	if err != nil {
		return nil
	}

	s.hub.Send(merchantId, websocket.Notification{
		Type: event.EventType(),
		Data: payload,
	})

	s.logger.Debug("NotificationService", "Event delivered to dashboard", map[string]interface{}{
		"event":       event.EventType(),
		"merchant_id": merchantId,
	})
	return nil
}
