package mapper

import (
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/model"
)

type TokenMapper struct{}

func NewTokenMapper() *TokenMapper {
	return &TokenMapper{}
}

// Token Type Mappers

func (m *TokenMapper) TokenTypeToEntity(t *model.TokenType) *entity.TokenType {
	if t == nil {
		return nil
	}
	return &entity.TokenType{
		Id:          t.Id,
		Name:        t.Name,
		Symbol:      t.Symbol,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *TokenMapper) TokenTypeToModel(t *entity.TokenType) *model.TokenType {
	if t == nil {
		return nil
	}
	return &model.TokenType{
		Id:          t.Id,
		Name:        t.Name,
		Symbol:      t.Symbol,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Transaction Mappers

func (m *TokenMapper) TransactionToEntity(t *model.TokenTransaction) *entity.TokenTransaction {
	if t == nil {
		return nil
	}
	return &entity.TokenTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		TokenTypeId:     t.TokenTypeId,
		Amount:          t.Amount,
		TransactionType: entity.TransactionType(t.TransactionType),
		SourceType:      entity.SourceType(t.SourceType),
		SourceId:        t.SourceId,
		Description:     t.Description,
		BalanceAfter:    t.BalanceAfter,
		ExpiresAt:       t.ExpiresAt,
		CreatedAt:       t.CreatedAt,
		TokenType:       m.TokenTypeToEntity(t.TokenType),
	}
}

func (m *TokenMapper) TransactionToModel(t *entity.TokenTransaction) *model.TokenTransaction {
	if t == nil {
		return nil
	}
	return &model.TokenTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		TokenTypeId:     t.TokenTypeId,
		Amount:          t.Amount,
		TransactionType: string(t.TransactionType),
		SourceType:      string(t.SourceType),
		SourceId:        t.SourceId,
		Description:     t.Description,
		BalanceAfter:    t.BalanceAfter,
		ExpiresAt:       t.ExpiresAt,
		CreatedAt:       t.CreatedAt,
	}
}

// Redemption Mappers

func (m *TokenMapper) RedemptionToEntity(r *model.TokenRedemption) *entity.TokenRedemption {
	if r == nil {
		return nil
	}
	return &entity.TokenRedemption{
		Id:             r.Id,
		UserId:         r.UserId,
		OrderId:        r.OrderId,
		TokenTypeId:    r.TokenTypeId,
		Amount:         r.Amount,
		DiscountAmount: r.DiscountAmount,
		Status:         entity.RedemptionStatus(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (m *TokenMapper) RedemptionToModel(r *entity.TokenRedemption) *model.TokenRedemption {
	if r == nil {
		return nil
	}
	return &model.TokenRedemption{
		Id:             r.Id,
		UserId:         r.UserId,
		OrderId:        r.OrderId,
		TokenTypeId:    r.TokenTypeId,
		Amount:         r.Amount,
		DiscountAmount: r.DiscountAmount,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Reward Rule Mappers

func (m *TokenMapper) RewardRuleToEntity(r *model.RewardRule) *entity.RewardRule {
	if r == nil {
		return nil
	}
	return &entity.RewardRule{
		Id:           r.Id,
		MerchantId:   r.MerchantId,
		TokenTypeId:  r.TokenTypeId,
		Name:         r.Name,
		Description:  r.Description,
		TriggerType:  entity.TriggerType(r.TriggerType),
		TriggerValue: r.TriggerValue,
		RewardAmount: r.RewardAmount,
		RewardType:   entity.RewardType(r.RewardType),
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		TokenType:    m.TokenTypeToEntity(r.TokenType),
	}
}

func (m *TokenMapper) RewardRuleToModel(r *entity.RewardRule) *model.RewardRule {
	if r == nil {
		return nil
	}
	return &model.RewardRule{
		Id:           r.Id,
		MerchantId:   r.MerchantId,
		TokenTypeId:  r.TokenTypeId,
		Name:         r.Name,
		Description:  r.Description,
		TriggerType:  string(r.TriggerType),
		TriggerValue: r.TriggerValue,
		RewardAmount: r.RewardAmount,
		RewardType:   string(r.RewardType),
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
