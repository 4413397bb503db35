package model

import (
	"time"

	"github.com/google/uuid"
)

type Merchant struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	TokenRatio    float64   `gorm:"type:decimal(5,2);default:1.0"`
	NewUserReward int       `gorm:"default:0"`
	QrCodeUrl     string    `gorm:"type:text"`
	IsActive      bool      `gorm:"default:true"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Merchant) TableName() string {
	return "merchants"
}
