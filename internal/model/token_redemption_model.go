package model

import (
	"time"

	"github.com/google/uuid"
)

type TokenRedemption struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderId        *uuid.UUID `gorm:"type:uuid;index"`
	TokenTypeId    uuid.UUID  `gorm:"type:uuid;not null"`
	Amount         int        `gorm:"not null"`
	DiscountAmount float64    `gorm:"type:decimal(10,2);not null"`
	Status         string     `gorm:"type:varchar(20);not null;default:'applied'"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`

	TokenType *TokenType `gorm:"foreignKey:TokenTypeId"`
}

func (TokenRedemption) TableName() string {
	return "token_redemptions"
}
