package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MerchantOwnedBy filters rows belonging to a merchant
type MerchantOwnedBy struct {
	MerchantID uuid.UUID
}

func (s MerchantOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("merchant_id = ?", s.MerchantID)
}

// ByStatus filters orders (or redemptions) by status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByPhoneNumber filters users by phone number
type ByPhoneNumber struct {
	PhoneNumber string
}

func (s ByPhoneNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("phone_number = ?", s.PhoneNumber)
}

// ByEmail filters merchants by email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
