package implementation

import (
	"context"
	"time"

	"qr-dine-be/internal/model"
	"qr-dine-be/internal/repository/contract"
	"qr-dine-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentEventRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) contract.PaymentEventRepository {
	return &paymentEventRepositoryImpl{db: db}
}

func (r *paymentEventRepositoryImpl) Create(ctx context.Context, event *model.PaymentEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *paymentEventRepositoryImpl) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.PaymentEvent{}).
		Where("id = ?", id).
		Update("processed_at", &now).Error
}

func (r *paymentEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.PaymentEvent, error) {
	var events []*model.PaymentEvent
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
