package contract

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RewardRuleRepository interface {
	Create(ctx context.Context, rule *entity.RewardRule) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RewardRule, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RewardRule, error)
	Update(ctx context.Context, rule *entity.RewardRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
