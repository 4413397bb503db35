package entity

import (
	"time"

	"github.com/google/uuid"
)

type RewardType string
type TriggerType string

const (
	RewardTypeFixed      RewardType = "fixed"
	RewardTypePercentage RewardType = "percentage"

	TriggerTypeOrderAmount TriggerType = "order_amount"
)

// RewardRule is a merchant-configured condition that awards tokens when an
// order settles. Read-only to the settlement flow.
type RewardRule struct {
	Id           uuid.UUID
	MerchantId   uuid.UUID
	TokenTypeId  uuid.UUID
	Name         string
	Description  string
	TriggerType  TriggerType
	TriggerValue float64
	RewardAmount int
	RewardType   RewardType
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	TokenType *TokenType
}

// TokenAward is the outcome of evaluating one qualifying rule.
type TokenAward struct {
	TokenTypeId uuid.UUID
	RuleId      *uuid.UUID
	Amount      int
	Description string
}
