package contract

import (
	"context"
	"time"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/specification"

	"github.com/google/uuid"
)

// TokenTransactionRepository is the append-only ledger store. There is no
// Update or Delete on purpose: corrections are new offsetting rows.
type TokenTransactionRepository interface {
	Create(ctx context.Context, tx *entity.TokenTransaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TokenTransaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TokenTransaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SumAmounts returns the signed sum over all ledger rows for the pair.
	SumAmounts(ctx context.Context, userId, tokenTypeId uuid.UUID) (int, error)

	// SumExpiredPending returns the positive total of earned rows whose
	// expires_at is before now and which have no 'expired' reversal row
	// pointing back at them yet.
	SumExpiredPending(ctx context.Context, userId, tokenTypeId uuid.UUID, now time.Time) (int, error)

	// LatestByUserAndType returns the most recent ledger row for the pair,
	// or nil when the pair has no history.
	LatestByUserAndType(ctx context.Context, userId, tokenTypeId uuid.UUID) (*entity.TokenTransaction, error)

	// FindExpiredUnreversed lists earned rows past their expiry that still
	// lack an 'expired' reversal, oldest first.
	FindExpiredUnreversed(ctx context.Context, now time.Time, limit int) ([]*entity.TokenTransaction, error)
}
