package implementation

import (
	"context"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/mapper"
	"qr-dine-be/internal/model"
	"qr-dine-be/internal/repository/contract"
	"qr-dine-be/internal/repository/specification"

	"gorm.io/gorm"
)

type tokenTypeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TokenMapper
}

func NewTokenTypeRepository(db *gorm.DB) contract.TokenTypeRepository {
	return &tokenTypeRepositoryImpl{db: db, mapper: mapper.NewTokenMapper()}
}

func (r *tokenTypeRepositoryImpl) Create(ctx context.Context, tokenType *entity.TokenType) error {
	return r.db.WithContext(ctx).Create(r.mapper.TokenTypeToModel(tokenType)).Error
}

func (r *tokenTypeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TokenType, error) {
	var m model.TokenType
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

	return r.mapper.TokenTypeToEntity(&m), nil
}

func (r *tokenTypeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TokenType, error) {
	var models []*model.TokenType
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var types []*entity.TokenType
	for _, m := range models {
		types = append(types, r.mapper.TokenTypeToEntity(m))
	}

	return types, nil
}

func (r *tokenTypeRepositoryImpl) Update(ctx context.Context, tokenType *entity.TokenType) error {
	return r.db.WithContext(ctx).Model(&model.TokenType{}).
		Where("id = ?", tokenType.Id).
		Updates(map[string]interface{}{
			"name":        tokenType.Name,
			"symbol":      tokenType.Symbol,
			"description": tokenType.Description,
			"is_active":   tokenType.IsActive,
		}).Error
}
