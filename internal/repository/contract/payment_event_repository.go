package contract

import (
	"context"

	"qr-dine-be/internal/model"
	"qr-dine-be/internal/repository/specification"

	"github.com/google/uuid"
)

// PaymentEventRepository stores raw gateway notifications for audit and
// replay. It works directly on the model because the payload is opaque JSON.
type PaymentEventRepository interface {
	Create(ctx context.Context, event *model.PaymentEvent) error
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.PaymentEvent, error)
}
