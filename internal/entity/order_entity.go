package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// orderTransitions encodes the forward-only status machine. No transition
// re-enters pending.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusFailed, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusPreparing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusPreparing: {OrderStatusReady},
	OrderStatusReady:     {OrderStatusCompleted},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Order struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	MerchantId      uuid.UUID
	TableNumber     string
	Status          OrderStatus
	TotalAmount     float64
	DiscountAmount  float64
	FinalAmount     float64
	PaymentIntentId *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []OrderItem
}

type OrderItem struct {
	Id        uuid.UUID
	OrderId   uuid.UUID
	ProductId uuid.UUID
	Quantity  int
	Price     float64 // unit price at time of ordering

	Product *Product
}
