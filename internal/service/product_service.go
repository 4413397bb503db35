package service

import (
	"context"
	"time"

	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/pkg/apperr"
	"qr-dine-be/internal/repository/specification"
	"qr-dine-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProductService interface {
	// ListMenu is the public, unauthenticated menu for the QR landing page.
	ListMenu(ctx context.Context, merchantId uuid.UUID) ([]*dto.ProductResponse, error)

	ListProducts(ctx context.Context, merchantId uuid.UUID) ([]*dto.ProductResponse, error)
	CreateProduct(ctx context.Context, merchantId uuid.UUID, req *dto.ProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, merchantId, productId uuid.UUID, req *dto.ProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, merchantId, productId uuid.UUID) error
}

type productService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProductService(uowFactory unitofwork.RepositoryFactory) IProductService {
	return &productService{uowFactory: uowFactory}
}

func (s *productService) ListMenu(ctx context.Context, merchantId uuid.UUID) ([]*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	merchant, err := uow.MerchantRepository().FindOne(ctx,
		specification.ByID{ID: merchantId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if merchant == nil {
		return nil, apperr.NotFound("merchant")
	}

	products, err := uow.ProductRepository().FindAll(ctx,
		specification.MerchantOwnedBy{MerchantID: merchantId},
		specification.Filter("is_available", true),
		specification.OrderBy{Field: "name"},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return productsToResponses(products), nil
}

func (s *productService) ListProducts(ctx context.Context, merchantId uuid.UUID) ([]*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx,
		specification.MerchantOwnedBy{MerchantID: merchantId},
		specification.OrderBy{Field: "name"},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return productsToResponses(products), nil
}

func (s *productService) CreateProduct(ctx context.Context, merchantId uuid.UUID, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	product := &entity.Product{
		Id:          uuid.New(),
		MerchantId:  merchantId,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageUrl:    req.ImageUrl,
		IsAvailable: isAvailable,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return nil, apperr.Internal(err)
	}

	return productToResponse(product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, merchantId, productId uuid.UUID, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx,
		specification.ByID{ID: productId},
		specification.MerchantOwnedBy{MerchantID: merchantId},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if product == nil {
		return nil, apperr.NotFound("product")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.ImageUrl = req.ImageUrl
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return nil, apperr.Internal(err)
	}

	return productToResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, merchantId, productId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx,
		specification.ByID{ID: productId},
		specification.MerchantOwnedBy{MerchantID: merchantId},
	)
	if err != nil {
		return apperr.Internal(err)
	}
	if product == nil {
		return apperr.NotFound("product")
	}

	return uow.ProductRepository().Delete(ctx, productId)
}

func productToResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Id:          p.Id,
		MerchantId:  p.MerchantId,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageUrl:    p.ImageUrl,
		IsAvailable: p.IsAvailable,
	}
}

func productsToResponses(products []*entity.Product) []*dto.ProductResponse {
	res := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, productToResponse(p))
	}
	return res
}
