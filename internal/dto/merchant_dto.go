package dto

import (
	"github.com/google/uuid"
)

type MerchantSettingsResponse struct {
	Id            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	TokenRatio    float64   `json:"token_ratio"`
	NewUserReward int       `json:"new_user_reward"`
	QrCodeUrl     string    `json:"qr_code_url"`
	IsActive      bool      `json:"is_active"`
}

type UpdateMerchantSettingsRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=2,max=255"`
	TokenRatio    *float64 `json:"token_ratio" validate:"omitempty,gte=0,lte=10"`
	NewUserReward *int     `json:"new_user_reward" validate:"omitempty,gte=0"`
	QrCodeUrl     *string  `json:"qr_code_url" validate:"omitempty,url"`
}

type RewardRuleRequest struct {
	TokenTypeId  uuid.UUID `json:"token_type_id" validate:"required"`
	Name         string    `json:"name" validate:"required,min=2,max=255"`
	Description  string    `json:"description" validate:"omitempty,max=1000"`
	TriggerType  string    `json:"trigger_type" validate:"required,oneof=order_amount"`
	TriggerValue float64   `json:"trigger_value" validate:"gte=0"`
	RewardAmount int       `json:"reward_amount" validate:"required,gt=0"`
	RewardType   string    `json:"reward_type" validate:"required,oneof=fixed percentage"`
	IsActive     *bool     `json:"is_active"`
}

type RewardRuleResponse struct {
	Id           uuid.UUID `json:"id"`
	TokenTypeId  uuid.UUID `json:"token_type_id"`
	TokenSymbol  string    `json:"token_symbol,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	TriggerType  string    `json:"trigger_type"`
	TriggerValue float64   `json:"trigger_value"`
	RewardAmount int       `json:"reward_amount"`
	RewardType   string    `json:"reward_type"`
	IsActive     bool      `json:"is_active"`
}
