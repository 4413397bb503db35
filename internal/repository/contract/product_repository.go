package contract

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
