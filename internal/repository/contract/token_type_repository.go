package contract

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/specification"
)

type TokenTypeRepository interface {
	Create(ctx context.Context, tokenType *entity.TokenType) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TokenType, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TokenType, error)
	Update(ctx context.Context, tokenType *entity.TokenType) error
}
