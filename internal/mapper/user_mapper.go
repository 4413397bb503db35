package mapper

import (
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		PhoneNumber:  u.PhoneNumber,
		Name:         u.Name,
		Email:        u.Email,
		TokenBalance: u.TokenBalance,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:           u.Id,
		PhoneNumber:  u.PhoneNumber,
		Name:         u.Name,
		Email:        u.Email,
		TokenBalance: u.TokenBalance,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
