package contract

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/specification"
)

type MerchantRepository interface {
	Create(ctx context.Context, merchant *entity.Merchant) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Merchant, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Merchant, error)
	Update(ctx context.Context, merchant *entity.Merchant) error
}
