package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOrderItemRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	MerchantId  uuid.UUID                `json:"merchant_id" validate:"required"`
	TableNumber string                   `json:"table_number" validate:"omitempty,max=10"`
	Items       []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// RedeemTokensRequest optionally applies a token discount as part of payment.
type RedeemTokensRequest struct {
	TokenTypeId uuid.UUID `json:"token_type_id" validate:"required"`
	Amount      int       `json:"amount" validate:"required,gt=0"`
}

type PayOrderRequest struct {
	PaymentType  string               `json:"payment_type" validate:"omitempty,max=30"`
	RedeemTokens *RedeemTokensRequest `json:"redeem_tokens" validate:"omitempty"`
}

type OrderItemResponse struct {
	Id          uuid.UUID `json:"id"`
	ProductId   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
}

type OrderResponse struct {
	Id             uuid.UUID           `json:"id"`
	MerchantId     uuid.UUID           `json:"merchant_id"`
	TableNumber    string              `json:"table_number,omitempty"`
	Status         string              `json:"status"`
	TotalAmount    float64             `json:"total_amount"`
	DiscountAmount float64             `json:"discount_amount"`
	FinalAmount    float64             `json:"final_amount"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
}

type PayOrderResponse struct {
	Order        OrderResponse `json:"order"`
	PaymentRef   string        `json:"payment_ref,omitempty"`
	TokensEarned int           `json:"tokens_earned"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=preparing ready completed cancelled"`
}

// GatewayWebhookRequest mirrors the provider's notification payload. The
// signature is SHA512(order_id + status_code + gross_amount + server_key).
type GatewayWebhookRequest struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
}
