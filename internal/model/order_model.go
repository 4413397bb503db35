package model

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"`
	MerchantId      uuid.UUID `gorm:"type:uuid;not null;index"`
	TableNumber     string    `gorm:"type:varchar(10)"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount     float64   `gorm:"type:decimal(10,2);not null"`
	DiscountAmount  float64   `gorm:"type:decimal(10,2);default:0"`
	FinalAmount     float64   `gorm:"type:decimal(10,2);not null"`
	PaymentIntentId *string   `gorm:"type:varchar(255)"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`

	Items []OrderItem `gorm:"foreignKey:OrderId"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductId uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	Price     float64   `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductId"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
