package mapper

import (
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/model"
)

type MerchantMapper struct{}

func NewMerchantMapper() *MerchantMapper {
	return &MerchantMapper{}
}

func (m *MerchantMapper) ToEntity(mc *model.Merchant) *entity.Merchant {
	if mc == nil {
		return nil
	}
	return &entity.Merchant{
		Id:            mc.Id,
		Name:          mc.Name,
		Email:         mc.Email,
		PasswordHash:  mc.PasswordHash,
		TokenRatio:    mc.TokenRatio,
		NewUserReward: mc.NewUserReward,
		QrCodeUrl:     mc.QrCodeUrl,
		IsActive:      mc.IsActive,
		CreatedAt:     mc.CreatedAt,
		UpdatedAt:     mc.UpdatedAt,
	}
}

func (m *MerchantMapper) ToModel(mc *entity.Merchant) *model.Merchant {
	if mc == nil {
		return nil
	}
	return &model.Merchant{
		Id:            mc.Id,
		Name:          mc.Name,
		Email:         mc.Email,
		PasswordHash:  mc.PasswordHash,
		TokenRatio:    mc.TokenRatio,
		NewUserReward: mc.NewUserReward,
		QrCodeUrl:     mc.QrCodeUrl,
		IsActive:      mc.IsActive,
		CreatedAt:     mc.CreatedAt,
		UpdatedAt:     mc.UpdatedAt,
	}
}

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{
		Id:          p.Id,
		MerchantId:  p.MerchantId,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageUrl:    p.ImageUrl,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		Id:          p.Id,
		MerchantId:  p.MerchantId,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageUrl:    p.ImageUrl,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
