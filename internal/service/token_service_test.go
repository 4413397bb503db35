package service

import (
	"context"
	"testing"
	"time"

	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/pkg/apperr"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(store *memStore) ITokenService {
	return NewTokenService(newFakeFactory(store), gocache.New(gocache.NoExpiration, 0), nopLogger{})
}

func TestAwardUpdatesLedgerAndBalance(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	tokenType := store.addTokenType("Reward Token", "RWD")
	svc := newTokenService(store)

	res, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId:      user.Id,
		TokenTypeId: tokenType.Id,
		Amount:      100,
		Description: "Goodwill credit",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Amount)
	assert.Equal(t, 100, res.BalanceAfter)
	assert.Equal(t, "earned", res.TransactionType)
	assert.NotNil(t, res.ExpiresAt)

	balance, err := svc.GetBalance(context.Background(), user.Id, tokenType.Id)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)
	assert.Equal(t, 100, user.TokenBalance)
}

func TestAwardRejectsUnknownTokenType(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId:      user.Id,
		TokenTypeId: uuid.New(),
		Amount:      10,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestBalanceAfterChainsAcrossEntries(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	tokenType := store.addTokenType("Reward Token", "RWD")
	svc := newTokenService(store)

	amounts := []int{50, 30, 20}
	running := 0
	for _, amount := range amounts {
		res, err := svc.Award(context.Background(), &dto.AwardRequest{
			UserId:      user.Id,
			TokenTypeId: tokenType.Id,
			Amount:      amount,
		})
		require.NoError(t, err)
		running += amount
		assert.Equal(t, running, res.BalanceAfter)
	}

	// The latest snapshot always equals the signed sum over the ledger.
	sum := 0
	for _, tx := range store.transactions {
		sum += tx.Amount
	}
	assert.Equal(t, sum, store.transactions[len(store.transactions)-1].BalanceAfter)
}

func TestRedeemDebitsLedgerAndDiscountsOrder(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	order := store.addPendingOrder(user.Id, merchant.Id, 20.00)
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 500,
	})
	require.NoError(t, err)

	res, err := svc.Redeem(context.Background(), user.Id, &dto.RedeemRequest{
		OrderId:     order.Id,
		TokenTypeId: tokenType.Id,
		Amount:      300,
	})
	require.NoError(t, err)
	assert.Equal(t, 300, res.Amount)
	assert.InDelta(t, 3.00, res.DiscountAmount, 1e-9)
	assert.Equal(t, "applied", res.Status)

	assert.InDelta(t, 3.00, order.DiscountAmount, 1e-9)
	assert.InDelta(t, 17.00, order.FinalAmount, 1e-9)

	balance, err := svc.GetBalance(context.Background(), user.Id, tokenType.Id)
	require.NoError(t, err)
	assert.Equal(t, 200, balance)

	last := store.transactions[len(store.transactions)-1]
	assert.Equal(t, -300, last.Amount)
	assert.Equal(t, entity.TransactionTypeRedeemed, last.TransactionType)
	assert.Equal(t, 200, last.BalanceAfter)
}

func TestRedeemInsufficientBalance(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	order := store.addPendingOrder(user.Id, merchant.Id, 20.00)
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 50,
	})
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), user.Id, &dto.RedeemRequest{
		OrderId: order.Id, TokenTypeId: tokenType.Id, Amount: 100,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientBalance))

	appErr, _ := apperr.From(err)
	assert.Equal(t, 100, appErr.Details["requested"])
	assert.Equal(t, 50, appErr.Details["available"])

	// Nothing was written.
	assert.Len(t, store.redemptions, 0)
	assert.Len(t, store.transactions, 1)
}

func TestRedeemCappedByOrderTotal(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	// 5.00 at 0.01 per token caps the redemption at 500 tokens.
	order := store.addPendingOrder(user.Id, merchant.Id, 5.00)
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 1000,
	})
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), user.Id, &dto.RedeemRequest{
		OrderId: order.Id, TokenTypeId: tokenType.Id, Amount: 600,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	appErr, _ := apperr.From(err)
	assert.Equal(t, 500, appErr.Details["max_redeemable"])
}

func TestRedeemRejectsNonPendingOrder(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	order := store.addPendingOrder(user.Id, merchant.Id, 20.00)
	order.Status = entity.OrderStatusPaid
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 500,
	})
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), user.Id, &dto.RedeemRequest{
		OrderId: order.Id, TokenTypeId: tokenType.Id, Amount: 100,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))
}

func TestRedeemRejectsForeignOrder(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	other := store.addUser("Eka")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	order := store.addPendingOrder(other.Id, merchant.Id, 20.00)
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 500,
	})
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), user.Id, &dto.RedeemRequest{
		OrderId: order.Id, TokenTypeId: tokenType.Id, Amount: 100,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestPreviewRedemption(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	order := store.addPendingOrder(user.Id, merchant.Id, 10.00)
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 400,
	})
	require.NoError(t, err)

	res, err := svc.PreviewRedemption(context.Background(), user.Id, &dto.RedemptionPreviewRequest{
		OrderId: order.Id, TokenTypeId: tokenType.Id, Amount: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, 250, res.Amount)
	assert.InDelta(t, 2.50, res.DiscountAmount, 1e-9)
	assert.Equal(t, 1000, res.MaxRedeemable)
	assert.InDelta(t, 7.50, res.FinalAmount, 1e-9)

	// Preview never writes.
	assert.Len(t, store.redemptions, 0)
	assert.InDelta(t, 0, order.DiscountAmount, 1e-9)
}

func TestGetTransactionsPaginates(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	tokenType := store.addTokenType("Reward Token", "RWD")
	svc := newTokenService(store)

	for i := 0; i < 5; i++ {
		_, err := svc.Award(context.Background(), &dto.AwardRequest{
			UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 10 + i,
		})
		require.NoError(t, err)
	}

	page, err := svc.GetTransactions(context.Background(), user.Id, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Transactions, 2)
	// Newest first.
	assert.Equal(t, 14, page.Transactions[0].Amount)
	assert.Equal(t, 13, page.Transactions[1].Amount)

	page3, err := svc.GetTransactions(context.Background(), user.Id, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3.Transactions, 1)
	assert.Equal(t, 10, page3.Transactions[0].Amount)
}

func TestExpiredTokensExcludedFromBalance(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	tokenType := store.addTokenType("Reward Token", "RWD")
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 100,
	})
	require.NoError(t, err)

	// Backdate the expiry so the credit has lapsed without a sweep yet.
	past := time.Now().Add(-time.Hour)
	store.transactions[0].ExpiresAt = &past

	balance, err := svc.GetBalance(context.Background(), user.Id, tokenType.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestCleanupExpiredIsIdempotent(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	tokenType := store.addTokenType("Reward Token", "RWD")
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 100,
	})
	require.NoError(t, err)
	_, err = svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 40,
	})
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	store.transactions[0].ExpiresAt = &past

	reversed, err := svc.CleanupExpired(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, reversed)

	balance, err := svc.GetBalance(context.Background(), user.Id, tokenType.Id)
	require.NoError(t, err)
	assert.Equal(t, 40, balance)
	assert.Equal(t, 40, user.TokenBalance)

	last := store.transactions[len(store.transactions)-1]
	assert.Equal(t, entity.TransactionTypeExpired, last.TransactionType)
	assert.Equal(t, -100, last.Amount)

	// A second sweep over the same rows is a no-op.
	reversed, err = svc.CleanupExpired(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, reversed)
	assert.Equal(t, 40, user.TokenBalance)
}

func TestRefundRedemptionRestoresBalanceAndOrder(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	order := store.addPendingOrder(user.Id, merchant.Id, 20.00)
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 500,
	})
	require.NoError(t, err)

	redemption, err := svc.Redeem(context.Background(), user.Id, &dto.RedeemRequest{
		OrderId: order.Id, TokenTypeId: tokenType.Id, Amount: 300,
	})
	require.NoError(t, err)

	res, err := svc.RefundRedemption(context.Background(), user.Id, redemption.Id)
	require.NoError(t, err)
	assert.Equal(t, redemption.Id, res.RedemptionId)
	assert.Equal(t, 300, res.Amount)
	assert.Equal(t, 500, res.NewBalance)

	// The still-pending order gives its discount back.
	assert.InDelta(t, 0, order.DiscountAmount, 1e-9)
	assert.InDelta(t, 20.00, order.FinalAmount, 1e-9)
	assert.Equal(t, entity.RedemptionStatusRefunded, store.redemptions[0].Status)
	assert.Equal(t, 500, user.TokenBalance)

	last := store.transactions[len(store.transactions)-1]
	assert.Equal(t, entity.TransactionTypeRefunded, last.TransactionType)
	assert.Equal(t, 300, last.Amount)
	assert.Equal(t, 500, last.BalanceAfter)

	// Refunding the same redemption again conflicts.
	_, err = svc.RefundRedemption(context.Background(), user.Id, redemption.Id)
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))
	assert.Equal(t, 500, user.TokenBalance)
}

func TestRefundRedemptionKeepsSettledOrderTotals(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	order := store.addPendingOrder(user.Id, merchant.Id, 20.00)
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 500,
	})
	require.NoError(t, err)

	redemption, err := svc.Redeem(context.Background(), user.Id, &dto.RedeemRequest{
		OrderId: order.Id, TokenTypeId: tokenType.Id, Amount: 300,
	})
	require.NoError(t, err)

	order.Status = entity.OrderStatusPaid

	res, err := svc.RefundRedemption(context.Background(), user.Id, redemption.Id)
	require.NoError(t, err)
	assert.Equal(t, 500, res.NewBalance)

	// Settled totals stay historical; only the tokens travel back.
	assert.InDelta(t, 3.00, order.DiscountAmount, 1e-9)
	assert.InDelta(t, 17.00, order.FinalAmount, 1e-9)
}

func TestRefundRedemptionRejectsForeignUser(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	other := store.addUser("Raka")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Reward Token", "RWD")
	order := store.addPendingOrder(user.Id, merchant.Id, 20.00)
	svc := newTokenService(store)

	_, err := svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 500,
	})
	require.NoError(t, err)

	redemption, err := svc.Redeem(context.Background(), user.Id, &dto.RedeemRequest{
		OrderId: order.Id, TokenTypeId: tokenType.Id, Amount: 300,
	})
	require.NoError(t, err)

	_, err = svc.RefundRedemption(context.Background(), other.Id, redemption.Id)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, entity.RedemptionStatusApplied, store.redemptions[0].Status)
}

func TestInactiveTokenTypeIsConflictNotMissing(t *testing.T) {
	store := newMemStore()
	user := store.addUser("Dina")
	merchant := store.addMerchant("Warung", 0)
	tokenType := store.addTokenType("Legacy Token", "LGC")
	tokenType.IsActive = false
	order := store.addPendingOrder(user.Id, merchant.Id, 20.00)
	svc := newTokenService(store)

	_, err := svc.Redeem(context.Background(), user.Id, &dto.RedeemRequest{
		OrderId: order.Id, TokenTypeId: tokenType.Id, Amount: 10,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))

	_, err = svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: tokenType.Id, Amount: 10,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))

	// A token type that does not exist at all is still missing.
	_, err = svc.Award(context.Background(), &dto.AwardRequest{
		UserId: user.Id, TokenTypeId: uuid.New(), Amount: 10,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
