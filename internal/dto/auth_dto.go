package dto

import (
	"github.com/google/uuid"
)

// --- Customer (phone) auth ---

type RequestCodeRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
}

type VerifyCodeRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
}

type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

type UserDTO struct {
	Id           uuid.UUID `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	Name         string    `json:"name"`
	TokenBalance int       `json:"token_balance"`
}

// --- Merchant auth ---

type MerchantLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type MerchantLoginResponse struct {
	AccessToken string      `json:"access_token"`
	Merchant    MerchantDTO `json:"merchant"`
}

type MerchantDTO struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
