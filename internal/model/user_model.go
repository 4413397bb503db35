package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PhoneNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(255)"`
	Email       string    `gorm:"type:varchar(255)"`
	// Cached aggregate across all token types, updated in the same
	// transaction as every ledger write. Display only.
	TokenBalance int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
