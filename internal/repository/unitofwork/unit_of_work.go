package unitofwork

import (
	"context"

	"qr-dine-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MerchantRepository() contract.MerchantRepository
	ProductRepository() contract.ProductRepository
	OrderRepository() contract.OrderRepository

	TokenTypeRepository() contract.TokenTypeRepository
	TokenTransactionRepository() contract.TokenTransactionRepository
	TokenRedemptionRepository() contract.TokenRedemptionRepository
	RewardRuleRepository() contract.RewardRuleRepository
	PaymentEventRepository() contract.PaymentEventRepository
}
