package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"qr-dine-be/internal/constant"
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/pkg/apperr"
	"qr-dine-be/internal/pkg/logger"
	"qr-dine-be/internal/repository/specification"
	"qr-dine-be/internal/repository/unitofwork"

	"gorm.io/gorm"
)

type IRewardService interface {
	// Evaluate returns the token awards an order of the given pre-discount
	// amount earns under the merchant's active rules.
	Evaluate(merchant *entity.Merchant, rules []*entity.RewardRule, orderAmount float64) []entity.TokenAward

	// AwardOrderTokens applies rule awards and the one-time new-user bonus
	// for a settling order. It must run inside the caller's transaction with
	// the user row already locked. Returns the total tokens credited.
	AwardOrderTokens(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, order *entity.Order) (int, error)
}

type rewardService struct {
	logger logger.ILogger
}

func NewRewardService(log logger.ILogger) IRewardService {
	return &rewardService{logger: log}
}

// Evaluate walks the merchant's rules in isolation from storage. Rewards are
// computed on the pre-discount order amount: spending tokens does not shrink
// the tokens earned.
func (s *rewardService) Evaluate(merchant *entity.Merchant, rules []*entity.RewardRule, orderAmount float64) []entity.TokenAward {
	var awards []entity.TokenAward

	for _, rule := range rules {
		if !rule.IsActive || rule.TriggerType != entity.TriggerTypeOrderAmount {
			continue
		}

		var amount int
		switch rule.RewardType {
		case entity.RewardTypeFixed:
			if orderAmount >= rule.TriggerValue {
				amount = rule.RewardAmount
			}
		case entity.RewardTypePercentage:
			scaled := orderAmount * float64(rule.RewardAmount) / 100
			if merchant != nil && merchant.TokenRatio > 0 {
				scaled *= merchant.TokenRatio
			}
			amount = int(math.Floor(scaled))
		}

		if amount <= 0 {
			continue
		}

		ruleId := rule.Id
		awards = append(awards, entity.TokenAward{
			TokenTypeId: rule.TokenTypeId,
			RuleId:      &ruleId,
			Amount:      amount,
			Description: fmt.Sprintf("Reward: %s", rule.Name),
		})
	}

	return awards
}

func (s *rewardService) AwardOrderTokens(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, order *entity.Order) (int, error) {
	merchant, err := uow.MerchantRepository().FindOne(ctx, specification.ByID{ID: order.MerchantId})
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if merchant == nil {
		return 0, apperr.NotFound("merchant")
	}

	rules, err := uow.RewardRuleRepository().FindAll(ctx,
		specification.MerchantOwnedBy{MerchantID: order.MerchantId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	awards := s.Evaluate(merchant, rules, order.TotalAmount)
	expiresAt := time.Now().AddDate(0, 0, constant.TokenExpiryDays)
	total := 0

	for _, award := range awards {
		orderId := order.Id
		_, err := appendLedgerEntry(ctx, uow, ledgerEntryParams{
			UserId:          user.Id,
			TokenTypeId:     award.TokenTypeId,
			Amount:          award.Amount,
			TransactionType: entity.TransactionTypeEarned,
			SourceType:      entity.SourceTypeOrder,
			SourceId:        &orderId,
			Description:     award.Description,
			ExpiresAt:       &expiresAt,
		})
		if err != nil {
			return 0, apperr.Internal(err)
		}
		total += award.Amount
	}

	bonus, err := s.grantNewUserBonus(ctx, uow, user, merchant)
	if err != nil {
		return 0, err
	}
	total += bonus

	if total > 0 {
		if err := adjustUserBalance(ctx, uow, user, total); err != nil {
			return 0, apperr.Internal(err)
		}
	}

	return total, nil
}

// grantNewUserBonus credits the merchant's configured signup reward on the
// reserved reward token type. The partial unique index on signup rows makes
// a second attempt fail with a duplicate-key error, which is swallowed: the
// bonus is one per user for life, no matter how settlements interleave.
func (s *rewardService) grantNewUserBonus(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, merchant *entity.Merchant) (int, error) {
	if merchant.NewUserReward <= 0 {
		return 0, nil
	}

	rewardType, err := uow.TokenTypeRepository().FindOne(ctx, specification.BySymbol{Symbol: constant.RewardTokenSymbol})
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if rewardType == nil || !rewardType.IsActive {
		return 0, nil
	}

	expiresAt := time.Now().AddDate(0, 0, constant.TokenExpiryDays)
	_, err = appendLedgerEntry(ctx, uow, ledgerEntryParams{
		UserId:          user.Id,
		TokenTypeId:     rewardType.Id,
		Amount:          merchant.NewUserReward,
		TransactionType: entity.TransactionTypeEarned,
		SourceType:      entity.SourceTypeSignup,
		Description:     fmt.Sprintf("Welcome bonus from %s", merchant.Name),
		ExpiresAt:       &expiresAt,
	})
	if err != nil {
		if isDuplicateKey(err) {
			return 0, nil
		}
		return 0, apperr.Internal(err)
	}

	s.logger.Info("RewardService", "New user bonus granted", map[string]interface{}{
		"user_id": user.Id,
		"amount":  merchant.NewUserReward,
	})
	return merchant.NewUserReward, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
