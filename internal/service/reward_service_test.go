package service

import (
	"context"
	"testing"

	"qr-dine-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateFixedRuleThreshold(t *testing.T) {
	svc := NewRewardService(nopLogger{})
	merchant := &entity.Merchant{TokenRatio: 1.0}
	tokenTypeId := uuid.New()

	rule := &entity.RewardRule{
		Id:           uuid.New(),
		TokenTypeId:  tokenTypeId,
		Name:         "Base reward",
		TriggerType:  entity.TriggerTypeOrderAmount,
		TriggerValue: 10,
		RewardAmount: 25,
		RewardType:   entity.RewardTypeFixed,
		IsActive:     true,
	}

	tests := []struct {
		name        string
		orderAmount float64
		wantAwards  int
		wantAmount  int
	}{
		{name: "below trigger", orderAmount: 9.99, wantAwards: 0},
		{name: "exactly at trigger", orderAmount: 10.00, wantAwards: 1, wantAmount: 25},
		{name: "above trigger", orderAmount: 42.00, wantAwards: 1, wantAmount: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			awards := svc.Evaluate(merchant, []*entity.RewardRule{rule}, tt.orderAmount)
			require.Len(t, awards, tt.wantAwards)
			if tt.wantAwards > 0 {
				assert.Equal(t, tt.wantAmount, awards[0].Amount)
				assert.Equal(t, tokenTypeId, awards[0].TokenTypeId)
			}
		})
	}
}

func TestEvaluatePercentageRuleFloorsResult(t *testing.T) {
	svc := NewRewardService(nopLogger{})
	rule := &entity.RewardRule{
		Id:           uuid.New(),
		TokenTypeId:  uuid.New(),
		Name:         "Cashback",
		TriggerType:  entity.TriggerTypeOrderAmount,
		RewardAmount: 3, // 3 percent
		RewardType:   entity.RewardTypePercentage,
		IsActive:     true,
	}

	tests := []struct {
		name       string
		ratio      float64
		amount     float64
		wantAmount int
	}{
		{name: "floors fractional tokens", ratio: 1.0, amount: 33.00, wantAmount: 0},    // 0.99
		{name: "whole tokens pass through", ratio: 1.0, amount: 100.00, wantAmount: 3},  // 3.00
		{name: "ratio scales the reward", ratio: 2.0, amount: 100.00, wantAmount: 6},    // 6.00
		{name: "ratio result floored too", ratio: 1.5, amount: 55.00, wantAmount: 2},    // 2.475
		{name: "zero ratio leaves nominal", ratio: 0, amount: 100.00, wantAmount: 3},    // ratio ignored
		{name: "small order yields nothing", ratio: 1.0, amount: 10.00, wantAmount: 0},  // 0.3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merchant := &entity.Merchant{TokenRatio: tt.ratio}
			awards := svc.Evaluate(merchant, []*entity.RewardRule{rule}, tt.amount)
			if tt.wantAmount == 0 {
				assert.Len(t, awards, 0)
			} else {
				require.Len(t, awards, 1)
				assert.Equal(t, tt.wantAmount, awards[0].Amount)
			}
		})
	}
}

func TestEvaluateSkipsInactiveAndForeignTriggers(t *testing.T) {
	svc := NewRewardService(nopLogger{})
	merchant := &entity.Merchant{TokenRatio: 1.0}

	inactive := &entity.RewardRule{
		Id: uuid.New(), TokenTypeId: uuid.New(), Name: "Dormant",
		TriggerType: entity.TriggerTypeOrderAmount, TriggerValue: 1,
		RewardAmount: 10, RewardType: entity.RewardTypeFixed, IsActive: false,
	}
	unknownTrigger := &entity.RewardRule{
		Id: uuid.New(), TokenTypeId: uuid.New(), Name: "Visits",
		TriggerType: "visit_count", TriggerValue: 1,
		RewardAmount: 10, RewardType: entity.RewardTypeFixed, IsActive: true,
	}

	awards := svc.Evaluate(merchant, []*entity.RewardRule{inactive, unknownTrigger}, 100.00)
	assert.Len(t, awards, 0)
}

func TestAwardOrderTokensOnPreDiscountTotal(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	store.addRule(merchant.Id, tokenType.Id, "Base reward", entity.RewardTypeFixed, 10, 25)

	// Discounted below the trigger; the pre-discount total still qualifies.
	order := store.addPendingOrder(user.Id, merchant.Id, 12.00)
	order.DiscountAmount = 4.00
	order.FinalAmount = 8.00

	svc := NewRewardService(nopLogger{})
	uow := newFakeFactory(store).NewUnitOfWork(context.Background())

	earned, err := svc.AwardOrderTokens(context.Background(), uow, user, order)
	require.NoError(t, err)
	assert.Equal(t, 25, earned)
	assert.Equal(t, 25, user.TokenBalance)

	require.Len(t, store.transactions, 1)
	tx := store.transactions[0]
	assert.Equal(t, entity.TransactionTypeEarned, tx.TransactionType)
	assert.Equal(t, entity.SourceTypeOrder, tx.SourceType)
	require.NotNil(t, tx.SourceId)
	assert.Equal(t, order.Id, *tx.SourceId)
	assert.NotNil(t, tx.ExpiresAt)
}

func TestNewUserBonusGrantedOnlyOnce(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 50)
	store.addTokenType("Reward Token", "RWD")

	svc := NewRewardService(nopLogger{})
	uow := newFakeFactory(store).NewUnitOfWork(context.Background())

	first := store.addPendingOrder(user.Id, merchant.Id, 5.00)
	earned, err := svc.AwardOrderTokens(context.Background(), uow, user, first)
	require.NoError(t, err)
	assert.Equal(t, 50, earned)

	// The second settlement trips the signup unique index and is swallowed.
	second := store.addPendingOrder(user.Id, merchant.Id, 5.00)
	earned, err = svc.AwardOrderTokens(context.Background(), uow, user, second)
	require.NoError(t, err)
	assert.Equal(t, 0, earned)

	assert.Equal(t, 50, user.TokenBalance)

	signups := 0
	for _, tx := range store.transactions {
		if tx.SourceType == entity.SourceTypeSignup {
			signups++
		}
	}
	assert.Equal(t, 1, signups)
}

func TestNewUserBonusSkippedWithoutRewardType(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 50)
	// No RWD token type seeded.

	svc := NewRewardService(nopLogger{})
	uow := newFakeFactory(store).NewUnitOfWork(context.Background())

	order := store.addPendingOrder(user.Id, merchant.Id, 5.00)
	earned, err := svc.AwardOrderTokens(context.Background(), uow, user, order)
	require.NoError(t, err)
	assert.Equal(t, 0, earned)
	assert.Len(t, store.transactions, 0)
}
