package implementation

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/mapper"
	"qr-dine-be/internal/model"
	"qr-dine-be/internal/repository/contract"
	"qr-dine-be/internal/repository/specification"

	"gorm.io/gorm"
)

type orderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &orderRepositoryImpl{db: db, mapper: mapper.NewOrderMapper()}
}

func (r *orderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(order)).Error
}

func (r *orderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *orderRepositoryImpl) FindOneWithItems(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *orderRepositoryImpl) FindAllWithItems(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var models []*model.Order
	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var orders []*entity.Order
	for _, m := range models {
		orders = append(orders, r.mapper.ToEntity(m))
	}

	return orders, nil
}

func (r *orderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Order{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *orderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", order.Id).
		Updates(map[string]interface{}{
			"status":            string(order.Status),
			"discount_amount":   order.DiscountAmount,
			"final_amount":      order.FinalAmount,
			"payment_intent_id": order.PaymentIntentId,
		}).Error
}
