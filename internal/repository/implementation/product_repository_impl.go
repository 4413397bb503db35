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
)

type productRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &productRepositoryImpl{db: db, mapper: mapper.NewProductMapper()}
}

func (r *productRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(product)).Error
}

func (r *productRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
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

func (r *productRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var products []*entity.Product
	for _, m := range models {
		products = append(products, r.mapper.ToEntity(m))
	}

	return products, nil
}

func (r *productRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.Id).
		Updates(map[string]interface{}{
			"name":         product.Name,
			"description":  product.Description,
			"price":        product.Price,
			"image_url":    product.ImageUrl,
			"is_available": product.IsAvailable,
		}).Error
}

func (r *productRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}
