package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PaymentEvent is an audit row for every raw gateway notification, persisted
// before processing so webhook handling can be replayed or inspected.
type PaymentEvent struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Provider    string         `gorm:"type:varchar(50);not null"`
	EventType   string         `gorm:"type:varchar(50);not null"`
	OrderId     *uuid.UUID     `gorm:"type:uuid;index"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	ProcessedAt *time.Time
	CreatedAt   time.Time `gorm:"default:now();not null"`
}

func (PaymentEvent) TableName() string {
	return "payment_events"
}
