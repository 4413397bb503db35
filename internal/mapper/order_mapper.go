package mapper

import (
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/model"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, *m.ItemToEntity(&o.Items[i]))
	}

	return &entity.Order{
		Id:              o.Id,
		UserId:          o.UserId,
		MerchantId:      o.MerchantId,
		TableNumber:     o.TableNumber,
		Status:          entity.OrderStatus(o.Status),
		TotalAmount:     o.TotalAmount,
		DiscountAmount:  o.DiscountAmount,
		FinalAmount:     o.FinalAmount,
		PaymentIntentId: o.PaymentIntentId,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           items,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}

	items := make([]model.OrderItem, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, *m.ItemToModel(&o.Items[i]))
	}

	return &model.Order{
		Id:              o.Id,
		UserId:          o.UserId,
		MerchantId:      o.MerchantId,
		TableNumber:     o.TableNumber,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		DiscountAmount:  o.DiscountAmount,
		FinalAmount:     o.FinalAmount,
		PaymentIntentId: o.PaymentIntentId,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           items,
	}
}

func (m *OrderMapper) ItemToEntity(i *model.OrderItem) *entity.OrderItem {
	if i == nil {
		return nil
	}

	var product *entity.Product
	if i.Product != nil {
		product = NewProductMapper().ToEntity(i.Product)
	}

	return &entity.OrderItem{
		Id:        i.Id,
		OrderId:   i.OrderId,
		ProductId: i.ProductId,
		Quantity:  i.Quantity,
		Price:     i.Price,
		Product:   product,
	}
}

func (m *OrderMapper) ItemToModel(i *entity.OrderItem) *model.OrderItem {
	if i == nil {
		return nil
	}
	return &model.OrderItem{
		Id:        i.Id,
		OrderId:   i.OrderId,
		ProductId: i.ProductId,
		Quantity:  i.Quantity,
		Price:     i.Price,
	}
}
