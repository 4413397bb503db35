package service

import (
	"context"
	"fmt"
	"time"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Ledger write helpers shared by the token, reward and order services. All of
// them require an already-begun unit of work with the affected user's row
// locked (UserRepository().FindOneForUpdate), which serializes every ledger
// write per user.

type ledgerEntryParams struct {
	UserId          uuid.UUID
	TokenTypeId     uuid.UUID
	Amount          int
	TransactionType entity.TransactionType
	SourceType      entity.SourceType
	SourceId        *uuid.UUID
	Description     string
	ExpiresAt       *time.Time
}

// appendLedgerEntry inserts one append-only ledger row with its running
// balance snapshot and returns it. The snapshot is derived from the latest
// row for the (user, token type) pair; under the user row lock this cannot
// race with another writer.
func appendLedgerEntry(ctx context.Context, uow unitofwork.UnitOfWork, p ledgerEntryParams) (*entity.TokenTransaction, error) {
	txRepo := uow.TokenTransactionRepository()

	latest, err := txRepo.LatestByUserAndType(ctx, p.UserId, p.TokenTypeId)
	if err != nil {
		return nil, err
	}

	prior := 0
	if latest != nil {
		prior = latest.BalanceAfter
	}

	tx := &entity.TokenTransaction{
		Id:              uuid.New(),
		UserId:          p.UserId,
		TokenTypeId:     p.TokenTypeId,
		Amount:          p.Amount,
		TransactionType: p.TransactionType,
		SourceType:      p.SourceType,
		SourceId:        p.SourceId,
		Description:     p.Description,
		BalanceAfter:    prior + p.Amount,
		ExpiresAt:       p.ExpiresAt,
		CreatedAt:       time.Now(),
	}

	if err := txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return tx, nil
}

// availableBalance computes the spendable balance: the signed sum over the
// whole ledger minus earned amounts that have lapsed but have not been
// reversed by the expiry sweep yet.
func availableBalance(ctx context.Context, uow unitofwork.UnitOfWork, userId, tokenTypeId uuid.UUID) (int, error) {
	txRepo := uow.TokenTransactionRepository()

	total, err := txRepo.SumAmounts(ctx, userId, tokenTypeId)
	if err != nil {
		return 0, err
	}

	lapsed, err := txRepo.SumExpiredPending(ctx, userId, tokenTypeId, time.Now())
	if err != nil {
		return 0, err
	}

	return total - lapsed, nil
}

// adjustUserBalance updates the denormalized display aggregate on the locked
// user row by the signed delta.
func adjustUserBalance(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, delta int) error {
	user.TokenBalance += delta
	return uow.UserRepository().Update(ctx, user)
}
