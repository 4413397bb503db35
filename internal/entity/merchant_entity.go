package entity

import (
	"time"

	"github.com/google/uuid"
)

type Merchant struct {
	Id           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	// TokenRatio scales percentage-type rewards merchant-wide (1.0 = nominal).
	TokenRatio    float64
	NewUserReward int
	QrCodeUrl     string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Product struct {
	Id          uuid.UUID
	MerchantId  uuid.UUID
	Name        string
	Description string
	Price       float64
	ImageUrl    string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
