package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"qr-dine-be/internal/constant"
	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/pkg/apperr"
	"qr-dine-be/internal/pkg/logger"
	"qr-dine-be/internal/repository/specification"
	"qr-dine-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type ITokenService interface {
	ListTokenTypes(ctx context.Context) ([]*dto.TokenTypeResponse, error)
	GetBalances(ctx context.Context, userId uuid.UUID) ([]*dto.BalanceResponse, error)
	GetBalance(ctx context.Context, userId, tokenTypeId uuid.UUID) (int, error)
	GetTransactions(ctx context.Context, userId uuid.UUID, page, perPage int) (*dto.TransactionListResponse, error)
	PreviewRedemption(ctx context.Context, userId uuid.UUID, req *dto.RedemptionPreviewRequest) (*dto.RedemptionPreviewResponse, error)
	Redeem(ctx context.Context, userId uuid.UUID, req *dto.RedeemRequest) (*dto.RedemptionResponse, error)
	RefundRedemption(ctx context.Context, userId, redemptionId uuid.UUID) (*dto.RefundRedemptionResponse, error)
	Award(ctx context.Context, req *dto.AwardRequest) (*dto.TransactionResponse, error)
	CleanupExpired(ctx context.Context, batchSize int) (int, error)
}

type tokenService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
	logger     logger.ILogger
}

func NewTokenService(uowFactory unitofwork.RepositoryFactory, cache *gocache.Cache, log logger.ILogger) ITokenService {
	return &tokenService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     log,
	}
}

func balanceCacheKey(userId, tokenTypeId uuid.UUID) string {
	return fmt.Sprintf("balance:%s:%s", userId, tokenTypeId)
}

func (s *tokenService) invalidateBalance(userId, tokenTypeId uuid.UUID) {
	if s.cache != nil {
		s.cache.Delete(balanceCacheKey(userId, tokenTypeId))
	}
}

func (s *tokenService) ListTokenTypes(ctx context.Context) ([]*dto.TokenTypeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	types, err := uow.TokenTypeRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "symbol"},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	res := make([]*dto.TokenTypeResponse, 0, len(types))
	for _, t := range types {
		res = append(res, &dto.TokenTypeResponse{
			Id:          t.Id,
			Name:        t.Name,
			Symbol:      t.Symbol,
			Description: t.Description,
			IsActive:    t.IsActive,
		})
	}
	return res, nil
}

func (s *tokenService) GetBalances(ctx context.Context, userId uuid.UUID) ([]*dto.BalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	types, err := uow.TokenTypeRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	res := make([]*dto.BalanceResponse, 0, len(types))
	for _, t := range types {
		balance, err := s.cachedBalance(ctx, uow, userId, t.Id)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		res = append(res, &dto.BalanceResponse{
			TokenTypeId: t.Id,
			Symbol:      t.Symbol,
			Name:        t.Name,
			Balance:     balance,
		})
	}
	return res, nil
}

func (s *tokenService) GetBalance(ctx context.Context, userId, tokenTypeId uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenType, err := uow.TokenTypeRepository().FindOne(ctx, specification.ByID{ID: tokenTypeId})
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if tokenType == nil {
		return 0, apperr.NotFound("token type")
	}

	balance, err := s.cachedBalance(ctx, uow, userId, tokenTypeId)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return balance, nil
}

func (s *tokenService) cachedBalance(ctx context.Context, uow unitofwork.UnitOfWork, userId, tokenTypeId uuid.UUID) (int, error) {
	key := balanceCacheKey(userId, tokenTypeId)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			return cached.(int), nil
		}
	}

	balance, err := availableBalance(ctx, uow, userId, tokenTypeId)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		s.cache.Set(key, balance, gocache.DefaultExpiration)
	}
	return balance, nil
}

func (s *tokenService) GetTransactions(ctx context.Context, userId uuid.UUID, page, perPage int) (*dto.TransactionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	txRepo := uow.TokenTransactionRepository()

	total, err := txRepo.Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	txs, err := txRepo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	res := &dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txs)),
		Total:        total,
		Page:         page,
		PerPage:      perPage,
	}
	for _, tx := range txs {
		res.Transactions = append(res.Transactions, transactionToResponse(tx))
	}
	return res, nil
}

func transactionToResponse(tx *entity.TokenTransaction) dto.TransactionResponse {
	r := dto.TransactionResponse{
		Id:              tx.Id,
		TokenTypeId:     tx.TokenTypeId,
		Amount:          tx.Amount,
		TransactionType: string(tx.TransactionType),
		SourceType:      string(tx.SourceType),
		Description:     tx.Description,
		BalanceAfter:    tx.BalanceAfter,
		ExpiresAt:       tx.ExpiresAt,
		CreatedAt:       tx.CreatedAt,
	}
	if tx.TokenType != nil {
		r.Symbol = tx.TokenType.Symbol
	}
	return r
}

// maxRedeemableTokens caps a redemption so the discount can never exceed the
// order total.
func maxRedeemableTokens(orderTotal float64) int {
	return int(math.Floor(orderTotal / constant.UnitTokenValue))
}

func (s *tokenService) PreviewRedemption(ctx context.Context, userId uuid.UUID, req *dto.RedemptionPreviewRequest) (*dto.RedemptionPreviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.Amount <= 0 {
		return nil, apperr.Validation("redemption amount must be positive", nil)
	}

	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByID{ID: req.OrderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("order")
	}
	if order.Status != entity.OrderStatusPending {
		return nil, apperr.StateConflict("order is not awaiting payment")
	}

	tokenType, err := uow.TokenTypeRepository().FindOne(ctx, specification.ByID{ID: req.TokenTypeId})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if tokenType == nil {
		return nil, apperr.NotFound("token type")
	}
	if !tokenType.IsActive {
		return nil, apperr.StateConflict("token type is inactive")
	}

	balance, err := availableBalance(ctx, uow, userId, req.TokenTypeId)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if balance < req.Amount {
		return nil, apperr.InsufficientBalance(req.Amount, balance)
	}

	maxTokens := maxRedeemableTokens(order.TotalAmount)
	if req.Amount > maxTokens {
		return nil, apperr.Validation("redemption exceeds order total", map[string]interface{}{
			"max_redeemable": maxTokens,
		})
	}

	discount := float64(req.Amount) * constant.UnitTokenValue
	return &dto.RedemptionPreviewResponse{
		Amount:         req.Amount,
		DiscountAmount: discount,
		MaxRedeemable:  maxTokens,
		OrderTotal:     order.TotalAmount,
		FinalAmount:    order.TotalAmount - discount,
	}, nil
}

func (s *tokenService) Redeem(ctx context.Context, userId uuid.UUID, req *dto.RedeemRequest) (*dto.RedemptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperr.Internal(err)
	}
	defer uow.Rollback()

	redemption, err := applyRedemption(ctx, uow, userId, req.OrderId, req.TokenTypeId, req.Amount)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, apperr.Internal(err)
	}

	s.invalidateBalance(userId, req.TokenTypeId)
	s.logger.Info("TokenService", "Redemption applied", map[string]interface{}{
		"redemption_id": redemption.Id,
		"user_id":       userId,
		"amount":        req.Amount,
	})

	return redemptionToResponse(redemption), nil
}

// RefundRedemption returns a customer's redeemed tokens outside the order
// lifecycle (support-driven reversals). Only applied redemptions qualify;
// when the order is still awaiting payment its discount is rolled back with
// the tokens, settled orders keep their historical totals.
func (s *tokenService) RefundRedemption(ctx context.Context, userId, redemptionId uuid.UUID) (*dto.RefundRedemptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperr.Internal(err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOneForUpdate(ctx, userId)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	redemption, err := uow.TokenRedemptionRepository().FindOne(ctx,
		specification.ByID{ID: redemptionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if redemption == nil {
		return nil, apperr.NotFound("redemption")
	}
	if redemption.Status != entity.RedemptionStatusApplied {
		return nil, apperr.StateConflict("redemption is not applied")
	}

	var order *entity.Order
	if redemption.OrderId != nil {
		order, err = uow.OrderRepository().FindOne(ctx, specification.ByID{ID: *redemption.OrderId})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if order != nil && order.Status != entity.OrderStatusPending {
			order = nil
		}
	}

	if err := compensateRedemption(ctx, uow, user, redemption, order); err != nil {
		return nil, err
	}

	newBalance, err := availableBalance(ctx, uow, userId, redemption.TokenTypeId)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperr.Internal(err)
	}

	s.invalidateBalance(userId, redemption.TokenTypeId)
	s.logger.Info("TokenService", "Redemption refunded", map[string]interface{}{
		"redemption_id": redemptionId,
		"user_id":       userId,
		"amount":        redemption.Amount,
	})

	return &dto.RefundRedemptionResponse{
		RedemptionId: redemption.Id,
		Amount:       redemption.Amount,
		NewBalance:   newBalance,
	}, nil
}

// applyRedemption validates and applies a redemption inside the caller's
// transaction. Validation order: amount, order, token type, balance. The
// user row lock is taken before any read so the balance check and the
// ledger write are atomic against concurrent redemptions.
func applyRedemption(ctx context.Context, uow unitofwork.UnitOfWork, userId, orderId, tokenTypeId uuid.UUID, amount int) (*entity.TokenRedemption, error) {
	if amount <= 0 {
		return nil, apperr.Validation("redemption amount must be positive", nil)
	}

	user, err := uow.UserRepository().FindOneForUpdate(ctx, userId)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByID{ID: orderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("order")
	}
	if order.Status != entity.OrderStatusPending {
		return nil, apperr.StateConflict("order is not awaiting payment")
	}

	tokenType, err := uow.TokenTypeRepository().FindOne(ctx, specification.ByID{ID: tokenTypeId})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if tokenType == nil {
		return nil, apperr.NotFound("token type")
	}
	if !tokenType.IsActive {
		return nil, apperr.StateConflict("token type is inactive")
	}

	balance, err := availableBalance(ctx, uow, userId, tokenTypeId)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if balance < amount {
		return nil, apperr.InsufficientBalance(amount, balance)
	}

	maxTokens := maxRedeemableTokens(order.TotalAmount)
	if amount > maxTokens {
		return nil, apperr.Validation("redemption exceeds order total", map[string]interface{}{
			"max_redeemable": maxTokens,
		})
	}

	discount := float64(amount) * constant.UnitTokenValue

	redemption := &entity.TokenRedemption{
		Id:             uuid.New(),
		UserId:         userId,
		OrderId:        &order.Id,
		TokenTypeId:    tokenTypeId,
		Amount:         amount,
		DiscountAmount: discount,
		Status:         entity.RedemptionStatusApplied,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := uow.TokenRedemptionRepository().Create(ctx, redemption); err != nil {
		return nil, apperr.Internal(err)
	}

	_, err = appendLedgerEntry(ctx, uow, ledgerEntryParams{
		UserId:          userId,
		TokenTypeId:     tokenTypeId,
		Amount:          -amount,
		TransactionType: entity.TransactionTypeRedeemed,
		SourceType:      entity.SourceTypeRedemption,
		SourceId:        &redemption.Id,
		Description:     fmt.Sprintf("Redeemed %d tokens on order %s", amount, order.Id),
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	order.DiscountAmount += discount
	order.FinalAmount = order.TotalAmount - order.DiscountAmount
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := adjustUserBalance(ctx, uow, user, -amount); err != nil {
		return nil, apperr.Internal(err)
	}

	return redemption, nil
}

// compensateRedemption reverses an applied redemption inside the caller's
// transaction: one offsetting refunded ledger row, status flip to refunded,
// and the order discount rolled back. Requires the user row lock.
func compensateRedemption(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, redemption *entity.TokenRedemption, order *entity.Order) error {
	if redemption.Status != entity.RedemptionStatusApplied {
		return apperr.StateConflict("redemption is not applied")
	}

	_, err := appendLedgerEntry(ctx, uow, ledgerEntryParams{
		UserId:          redemption.UserId,
		TokenTypeId:     redemption.TokenTypeId,
		Amount:          redemption.Amount,
		TransactionType: entity.TransactionTypeRefunded,
		SourceType:      entity.SourceTypeRedemptionRefund,
		SourceId:        &redemption.Id,
		Description:     fmt.Sprintf("Refund of redemption %s", redemption.Id),
	})
	if err != nil {
		return apperr.Internal(err)
	}

	redemption.Status = entity.RedemptionStatusRefunded
	if err := uow.TokenRedemptionRepository().Update(ctx, redemption); err != nil {
		return apperr.Internal(err)
	}

	if order != nil {
		order.DiscountAmount -= redemption.DiscountAmount
		if order.DiscountAmount < 0 {
			order.DiscountAmount = 0
		}
		order.FinalAmount = order.TotalAmount - order.DiscountAmount
		if err := uow.OrderRepository().Update(ctx, order); err != nil {
			return apperr.Internal(err)
		}
	}

	if err := adjustUserBalance(ctx, uow, user, redemption.Amount); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

func redemptionToResponse(r *entity.TokenRedemption) *dto.RedemptionResponse {
	return &dto.RedemptionResponse{
		Id:             r.Id,
		OrderId:        r.OrderId,
		TokenTypeId:    r.TokenTypeId,
		Amount:         r.Amount,
		DiscountAmount: r.DiscountAmount,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
	}
}

func (s *tokenService) Award(ctx context.Context, req *dto.AwardRequest) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.Amount <= 0 {
		return nil, apperr.Validation("award amount must be positive", nil)
	}

	tokenType, err := uow.TokenTypeRepository().FindOne(ctx, specification.ByID{ID: req.TokenTypeId})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if tokenType == nil {
		return nil, apperr.NotFound("token type")
	}
	if !tokenType.IsActive {
		return nil, apperr.StateConflict("token type is inactive")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperr.Internal(err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOneForUpdate(ctx, req.UserId)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	description := req.Description
	if description == "" {
		description = "Manual token award"
	}

	expiresAt := time.Now().AddDate(0, 0, constant.TokenExpiryDays)
	tx, err := appendLedgerEntry(ctx, uow, ledgerEntryParams{
		UserId:          req.UserId,
		TokenTypeId:     req.TokenTypeId,
		Amount:          req.Amount,
		TransactionType: entity.TransactionTypeEarned,
		SourceType:      entity.SourceTypeManual,
		Description:     description,
		ExpiresAt:       &expiresAt,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := adjustUserBalance(ctx, uow, user, req.Amount); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperr.Internal(err)
	}

	s.invalidateBalance(req.UserId, req.TokenTypeId)
	s.logger.Info("TokenService", "Manual award", map[string]interface{}{
		"user_id":       req.UserId,
		"token_type_id": req.TokenTypeId,
		"amount":        req.Amount,
	})

	res := transactionToResponse(tx)
	return &res, nil
}

// CleanupExpired writes 'expired' reversal rows for lapsed earned tokens.
// Safe to run repeatedly: already-reversed rows are filtered at the store,
// so a second sweep over the same rows is a no-op.
func (s *tokenService) CleanupExpired(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	expired, err := uow.TokenTransactionRepository().FindExpiredUnreversed(ctx, time.Now(), batchSize)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, apperr.Internal(err)
	}
	defer uow.Rollback()

	reversed := 0
	lockedUsers := map[uuid.UUID]*entity.User{}

	for _, tx := range expired {
		user, ok := lockedUsers[tx.UserId]
		if !ok {
			user, err = uow.UserRepository().FindOneForUpdate(ctx, tx.UserId)
			if err != nil {
				return 0, apperr.Internal(err)
			}
			if user == nil {
				continue
			}
			lockedUsers[tx.UserId] = user
		}

		sourceId := tx.Id
		_, err := appendLedgerEntry(ctx, uow, ledgerEntryParams{
			UserId:          tx.UserId,
			TokenTypeId:     tx.TokenTypeId,
			Amount:          -tx.Amount,
			TransactionType: entity.TransactionTypeExpired,
			SourceType:      entity.SourceTypeExpiry,
			SourceId:        &sourceId,
			Description:     fmt.Sprintf("Expiry of %d tokens earned %s", tx.Amount, tx.CreatedAt.Format("2006-01-02")),
		})
		if err != nil {
			return 0, apperr.Internal(err)
		}

		if err := adjustUserBalance(ctx, uow, user, -tx.Amount); err != nil {
			return 0, apperr.Internal(err)
		}

		s.invalidateBalance(tx.UserId, tx.TokenTypeId)
		reversed++
	}

	if err := uow.Commit(); err != nil {
		return 0, apperr.Internal(err)
	}

	if reversed > 0 {
		s.logger.Info("TokenService", "Expiry sweep complete", map[string]interface{}{
			"reversed": reversed,
		})
	}
	return reversed, nil
}
