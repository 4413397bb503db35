package contract

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/specification"
)

type TokenRedemptionRepository interface {
	Create(ctx context.Context, redemption *entity.TokenRedemption) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TokenRedemption, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TokenRedemption, error)
	Update(ctx context.Context, redemption *entity.TokenRedemption) error
}
