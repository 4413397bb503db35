package implementation

import (
	"context"
	"time"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/mapper"
	"qr-dine-be/internal/model"
	"qr-dine-be/internal/repository/contract"
	"qr-dine-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type tokenTransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TokenMapper
}

func NewTokenTransactionRepository(db *gorm.DB) contract.TokenTransactionRepository {
	return &tokenTransactionRepositoryImpl{db: db, mapper: mapper.NewTokenMapper()}
}

func (r *tokenTransactionRepositoryImpl) Create(ctx context.Context, tx *entity.TokenTransaction) error {
	return r.db.WithContext(ctx).Create(r.mapper.TransactionToModel(tx)).Error
}

func (r *tokenTransactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TokenTransaction, error) {
	var m model.TokenTransaction
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

	return r.mapper.TransactionToEntity(&m), nil
}

func (r *tokenTransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TokenTransaction, error) {
	var models []*model.TokenTransaction
	query := r.db.WithContext(ctx).Preload("TokenType")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var txs []*entity.TokenTransaction
	for _, m := range models {
		txs = append(txs, r.mapper.TransactionToEntity(m))
	}

	return txs, nil
}

func (r *tokenTransactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.TokenTransaction{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *tokenTransactionRepositoryImpl) SumAmounts(ctx context.Context, userId, tokenTypeId uuid.UUID) (int, error) {
	var sum *int
	err := r.db.WithContext(ctx).Model(&model.TokenTransaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND token_type_id = ?", userId, tokenTypeId).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *tokenTransactionRepositoryImpl) SumExpiredPending(ctx context.Context, userId, tokenTypeId uuid.UUID, now time.Time) (int, error) {
	var sum *int
	err := r.db.WithContext(ctx).Model(&model.TokenTransaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND token_type_id = ?", userId, tokenTypeId).
		Where("transaction_type = ?", string(entity.TransactionTypeEarned)).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Where("NOT EXISTS (SELECT 1 FROM token_transactions r WHERE r.source_id = token_transactions.id AND r.transaction_type = ?)",
			string(entity.TransactionTypeExpired)).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *tokenTransactionRepositoryImpl) LatestByUserAndType(ctx context.Context, userId, tokenTypeId uuid.UUID) (*entity.TokenTransaction, error) {
	var m model.TokenTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token_type_id = ?", userId, tokenTypeId).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.TransactionToEntity(&m), nil
}

func (r *tokenTransactionRepositoryImpl) FindExpiredUnreversed(ctx context.Context, now time.Time, limit int) ([]*entity.TokenTransaction, error) {
	var models []*model.TokenTransaction
	err := r.db.WithContext(ctx).
		Where("transaction_type = ?", string(entity.TransactionTypeEarned)).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Where("NOT EXISTS (SELECT 1 FROM token_transactions r WHERE r.source_id = token_transactions.id AND r.transaction_type = ?)",
			string(entity.TransactionTypeExpired)).
		Order("expires_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	var txs []*entity.TokenTransaction
	for _, m := range models {
		txs = append(txs, r.mapper.TransactionToEntity(m))
	}

	return txs, nil
}
