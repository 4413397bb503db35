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

type tokenRedemptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TokenMapper
}

func NewTokenRedemptionRepository(db *gorm.DB) contract.TokenRedemptionRepository {
	return &tokenRedemptionRepositoryImpl{db: db, mapper: mapper.NewTokenMapper()}
}

func (r *tokenRedemptionRepositoryImpl) Create(ctx context.Context, redemption *entity.TokenRedemption) error {
	return r.db.WithContext(ctx).Create(r.mapper.RedemptionToModel(redemption)).Error
}

func (r *tokenRedemptionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TokenRedemption, error) {
	var m model.TokenRedemption
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

	return r.mapper.RedemptionToEntity(&m), nil
}

func (r *tokenRedemptionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TokenRedemption, error) {
	var models []*model.TokenRedemption
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var redemptions []*entity.TokenRedemption
	for _, m := range models {
		redemptions = append(redemptions, r.mapper.RedemptionToEntity(m))
	}

	return redemptions, nil
}

func (r *tokenRedemptionRepositoryImpl) Update(ctx context.Context, redemption *entity.TokenRedemption) error {
	return r.db.WithContext(ctx).Model(&model.TokenRedemption{}).
		Where("id = ?", redemption.Id).
		Updates(map[string]interface{}{
			"status": string(redemption.Status),
		}).Error
}
