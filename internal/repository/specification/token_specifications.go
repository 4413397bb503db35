package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserOwnedBy filters rows belonging to a user
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByTokenType filters ledger rows and redemptions by token type
type ByTokenType struct {
	TokenTypeID uuid.UUID
}

func (s ByTokenType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token_type_id = ?", s.TokenTypeID)
}

// ActiveOnly filters rows with is_active = true
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// BySymbol filters token types by their short symbol (e.g. "RWD")
type BySymbol struct {
	Symbol string
}

func (s BySymbol) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("symbol = ?", s.Symbol)
}
