package dto

import (
	"github.com/google/uuid"
)

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageUrl    string  `json:"image_url" validate:"omitempty,url"`
	IsAvailable *bool   `json:"is_available"`
}

type ProductResponse struct {
	Id          uuid.UUID `json:"id"`
	MerchantId  uuid.UUID `json:"merchant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageUrl    string    `json:"image_url,omitempty"`
	IsAvailable bool      `json:"is_available"`
}
