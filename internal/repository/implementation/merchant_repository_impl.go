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

type merchantRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MerchantMapper
}

func NewMerchantRepository(db *gorm.DB) contract.MerchantRepository {
	return &merchantRepositoryImpl{db: db, mapper: mapper.NewMerchantMapper()}
}

func (r *merchantRepositoryImpl) Create(ctx context.Context, merchant *entity.Merchant) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(merchant)).Error
}

func (r *merchantRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Merchant, error) {
	var m model.Merchant
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

func (r *merchantRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Merchant, error) {
	var models []*model.Merchant
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var merchants []*entity.Merchant
	for _, m := range models {
		merchants = append(merchants, r.mapper.ToEntity(m))
	}

	return merchants, nil
}

func (r *merchantRepositoryImpl) Update(ctx context.Context, merchant *entity.Merchant) error {
	return r.db.WithContext(ctx).Model(&model.Merchant{}).
		Where("id = ?", merchant.Id).
		Updates(map[string]interface{}{
			"name":            merchant.Name,
			"token_ratio":     merchant.TokenRatio,
			"new_user_reward": merchant.NewUserReward,
			"qr_code_url":     merchant.QrCodeUrl,
			"is_active":       merchant.IsActive,
		}).Error
}
