package model

import (
	"time"

	"github.com/google/uuid"
)

type RewardRule struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MerchantId   uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenTypeId  uuid.UUID `gorm:"type:uuid;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	TriggerType  string    `gorm:"type:varchar(30);not null;default:'order_amount'"`
	TriggerValue float64   `gorm:"type:decimal(10,2);not null"`
	RewardAmount int       `gorm:"not null"`
	RewardType   string    `gorm:"type:varchar(20);not null;default:'fixed'"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	TokenType *TokenType `gorm:"foreignKey:TokenTypeId"`
}

func (RewardRule) TableName() string {
	return "reward_rules"
}
