package dto

import (
	"time"

	"github.com/google/uuid"
)

type TokenTypeResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
}

type BalanceResponse struct {
	TokenTypeId uuid.UUID `json:"token_type_id"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Balance     int       `json:"balance"`
}

type TransactionResponse struct {
	Id              uuid.UUID  `json:"id"`
	TokenTypeId     uuid.UUID  `json:"token_type_id"`
	Symbol          string     `json:"symbol,omitempty"`
	Amount          int        `json:"amount"`
	TransactionType string     `json:"transaction_type"`
	SourceType      string     `json:"source_type,omitempty"`
	Description     string     `json:"description,omitempty"`
	BalanceAfter    int        `json:"balance_after"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"per_page"`
}

type RedemptionPreviewRequest struct {
	OrderId     uuid.UUID `json:"order_id" validate:"required"`
	TokenTypeId uuid.UUID `json:"token_type_id" validate:"required"`
	Amount      int       `json:"amount" validate:"required"`
}

type RedemptionPreviewResponse struct {
	Amount         int     `json:"amount"`
	DiscountAmount float64 `json:"discount_amount"`
	MaxRedeemable  int     `json:"max_redeemable"`
	OrderTotal     float64 `json:"order_total"`
	FinalAmount    float64 `json:"final_amount"`
}

type RedeemRequest struct {
	OrderId     uuid.UUID `json:"order_id" validate:"required"`
	TokenTypeId uuid.UUID `json:"token_type_id" validate:"required"`
	Amount      int       `json:"amount" validate:"required"`
}

type RedemptionResponse struct {
	Id             uuid.UUID  `json:"id"`
	OrderId        *uuid.UUID `json:"order_id,omitempty"`
	TokenTypeId    uuid.UUID  `json:"token_type_id"`
	Amount         int        `json:"amount"`
	DiscountAmount float64    `json:"discount_amount"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

type RefundRedemptionRequest struct {
	RedemptionId uuid.UUID `json:"redemption_id" validate:"required"`
}

type RefundRedemptionResponse struct {
	RedemptionId uuid.UUID `json:"redemption_id"`
	Amount       int       `json:"amount"`
	NewBalance   int       `json:"new_balance"`
}

// AwardRequest is the merchant-side manual grant (goodwill credits,
// promotions run outside the rule engine).
type AwardRequest struct {
	UserId      uuid.UUID `json:"user_id" validate:"required"`
	TokenTypeId uuid.UUID `json:"token_type_id" validate:"required"`
	Amount      int       `json:"amount" validate:"required,gt=0"`
	Description string    `json:"description" validate:"omitempty,max=255"`
}
