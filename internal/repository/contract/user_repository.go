package contract

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)

	// FindOneForUpdate locks the user row for the remainder of the current
	// transaction. Every ledger write for a user goes through this lock so
	// concurrent redemptions and awards serialize per user.
	FindOneForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error)

	Update(ctx context.Context, user *entity.User) error
}
