package implementation

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/mapper"
	"qr-dine-be/internal/model"
	"qr-dine-be/internal/repository/contract"
	"qr-dine-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepositoryImpl{db: db, mapper: mapper.NewUserMapper()}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(user)).Error
}

func (r *userRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
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

// FindOneForUpdate issues SELECT ... FOR UPDATE. Only meaningful inside a
// transaction; outside one the lock releases immediately.
func (r *userRepositoryImpl) FindOneForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var m model.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"token_balance": user.TokenBalance,
		}).Error
}
