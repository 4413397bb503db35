package unitofwork

import (
	"context"
	"fmt"

	"qr-dine-be/internal/repository/contract"
	"qr-dine-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MerchantRepository() contract.MerchantRepository {
	return implementation.NewMerchantRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProductRepository() contract.ProductRepository {
	return implementation.NewProductRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OrderRepository() contract.OrderRepository {
	return implementation.NewOrderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TokenTypeRepository() contract.TokenTypeRepository {
	return implementation.NewTokenTypeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TokenTransactionRepository() contract.TokenTransactionRepository {
	return implementation.NewTokenTransactionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TokenRedemptionRepository() contract.TokenRedemptionRepository {
	return implementation.NewTokenRedemptionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RewardRuleRepository() contract.RewardRuleRepository {
	return implementation.NewRewardRuleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentEventRepository() contract.PaymentEventRepository {
	return implementation.NewPaymentEventRepository(u.getDB())
}
