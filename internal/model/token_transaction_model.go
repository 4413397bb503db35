package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenTransaction rows are append-only. The partial unique index on user_id
// (only where source_type = 'signup') is what makes the new-user bonus
// race-free: a concurrent second insert fails at the store instead of
// double-awarding.
type TokenTransaction struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index:idx_token_tx_user_type,priority:1;uniqueIndex:idx_one_signup_bonus_per_user,where:source_type = 'signup'"`
	TokenTypeId     uuid.UUID  `gorm:"type:uuid;not null;index:idx_token_tx_user_type,priority:2"`
	Amount          int        `gorm:"not null"`
	TransactionType string     `gorm:"type:varchar(20);not null"`
	SourceType      string     `gorm:"type:varchar(30)"`
	SourceId        *uuid.UUID `gorm:"type:uuid;index"`
	Description     string     `gorm:"type:text"`
	BalanceAfter    int        `gorm:"not null"`
	ExpiresAt       *time.Time `gorm:"index"`
	CreatedAt       time.Time  `gorm:"default:now();not null"`

	TokenType *TokenType `gorm:"foreignKey:TokenTypeId"`
}

func (TokenTransaction) TableName() string {
	return "token_transactions"
}
