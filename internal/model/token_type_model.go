package model

import (
	"time"

	"github.com/google/uuid"
)

type TokenType struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Symbol      string    `gorm:"type:varchar(10);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (TokenType) TableName() string {
	return "token_types"
}
