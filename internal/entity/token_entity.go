package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string
type SourceType string
type RedemptionStatus string

const (
	TransactionTypeEarned   TransactionType = "earned"
	TransactionTypeRedeemed TransactionType = "redeemed"
	TransactionTypeExpired  TransactionType = "expired"
	TransactionTypeRefunded TransactionType = "refunded"

	SourceTypeSignup           SourceType = "signup"
	SourceTypeOrder            SourceType = "order"
	SourceTypeRedemption       SourceType = "redemption"
	SourceTypeManual           SourceType = "manual"
	SourceTypeRedemptionRefund SourceType = "redemption_refund"
	SourceTypeExpiry           SourceType = "expiry"

	RedemptionStatusApplied  RedemptionStatus = "applied"
	RedemptionStatusRefunded RedemptionStatus = "refunded"
)

// TokenType is a merchant-visible category of loyalty tokens (e.g. RWD, CB).
// Immutable once transactions reference it.
type TokenType struct {
	Id          uuid.UUID
	Name        string
	Symbol      string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TokenTransaction is a single ledger movement. The ledger is append-only:
// rows are never updated or deleted, and the sum of Amount per
// (user, token type) always equals the latest BalanceAfter for that pair.
type TokenTransaction struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	TokenTypeId     uuid.UUID
	Amount          int // signed: positive = credit, negative = debit
	TransactionType TransactionType
	SourceType      SourceType
	SourceId        *uuid.UUID
	Description     string
	BalanceAfter    int
	ExpiresAt       *time.Time
	CreatedAt       time.Time

	TokenType *TokenType
}

type TokenRedemption struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	OrderId        *uuid.UUID
	TokenTypeId    uuid.UUID
	Amount         int
	DiscountAmount float64
	Status         RedemptionStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
