package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          uuid.UUID
	PhoneNumber string
	Name        string
	Email       string
	// TokenBalance is a denormalized aggregate maintained alongside ledger
	// writes for fast display. The ledger is the source of truth.
	TokenBalance int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
