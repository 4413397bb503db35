package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ORDER_PAID").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Well-known event types published on the order lifecycle bus.
const (
	TypeOrderCreated   = "ORDER_CREATED"
	TypeOrderPaid      = "ORDER_PAID"
	TypeOrderFailed    = "ORDER_FAILED"
	TypeOrderStatus    = "ORDER_STATUS_CHANGED"
	TypeTokensAwarded  = "TOKENS_AWARDED"
	TypeTokensRedeemed = "TOKENS_REDEEMED"
)

// BaseEvent is the generic implementation used by publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
