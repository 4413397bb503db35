package contract

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/specification"
)

type OrderRepository interface {
	// Create persists the order together with its items.
	Create(ctx context.Context, order *entity.Order) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	// FindOneWithItems preloads items and their products.
	FindOneWithItems(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAllWithItems(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Update(ctx context.Context, order *entity.Order) error
}
