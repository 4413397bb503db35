package implementation

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/mapper"
	"qr-dine-be/internal/model"
	"qr-dine-be/internal/repository/contract"
	"qr-dine-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type rewardRuleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TokenMapper
}

func NewRewardRuleRepository(db *gorm.DB) contract.RewardRuleRepository {
	return &rewardRuleRepositoryImpl{db: db, mapper: mapper.NewTokenMapper()}
}

func (r *rewardRuleRepositoryImpl) Create(ctx context.Context, rule *entity.RewardRule) error {
	return r.db.WithContext(ctx).Create(r.mapper.RewardRuleToModel(rule)).Error
}

func (r *rewardRuleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RewardRule, error) {
	var m model.RewardRule
	query := r.db.WithContext(ctx).Preload("TokenType")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.RewardRuleToEntity(&m), nil
}

func (r *rewardRuleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RewardRule, error) {
	var models []*model.RewardRule
	query := r.db.WithContext(ctx).Preload("TokenType")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var rules []*entity.RewardRule
	for _, m := range models {
		rules = append(rules, r.mapper.RewardRuleToEntity(m))
	}

	return rules, nil
}

func (r *rewardRuleRepositoryImpl) Update(ctx context.Context, rule *entity.RewardRule) error {
	return r.db.WithContext(ctx).Model(&model.RewardRule{}).
		Where("id = ?", rule.Id).
		Updates(map[string]interface{}{
			"token_type_id": rule.TokenTypeId,
			"name":          rule.Name,
			"description":   rule.Description,
			"trigger_type":  string(rule.TriggerType),
			"trigger_value": rule.TriggerValue,
			"reward_amount": rule.RewardAmount,
			"reward_type":   string(rule.RewardType),
			"is_active":     rule.IsActive,
		}).Error
}

func (r *rewardRuleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RewardRule{}, id).Error
}
