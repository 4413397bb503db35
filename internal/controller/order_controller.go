package controller

import (
	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/pkg/serverutils"
	"qr-dine-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	CreateOrder(ctx *fiber.Ctx) error
	ListOrders(ctx *fiber.Ctx) error
	GetOrder(ctx *fiber.Ctx) error
	PayOrder(ctx *fiber.Ctx) error
	CancelOrder(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error

	MerchantQueue(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	RefundOrder(ctx *fiber.Ctx) error
}

type orderController struct {
	service service.IOrderService
}

func NewOrderController(service service.IOrderService) IOrderController {
	return &orderController{service: service}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	r.Post("/payment/midtrans/notification", c.Webhook)

	h := r.Group("/orders", serverutils.JwtMiddleware)
	h.Post("/", c.CreateOrder)
	h.Get("/", c.ListOrders)
	h.Get("/:id", c.GetOrder)
	h.Post("/:id/pay", c.PayOrder)
	h.Post("/:id/cancel", c.CancelOrder)

	m := r.Group("/merchant/orders", serverutils.MerchantJwtMiddleware)
	m.Get("/", c.MerchantQueue)
	m.Patch("/:id/status", c.UpdateStatus)
	m.Post("/:id/refund", c.RefundOrder)
}

func (c *orderController) CreateOrder(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	var req dto.CreateOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateOrder(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Order created", res))
}

func (c *orderController) ListOrders(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	res, err := c.service.ListOrders(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Orders", res))
}

func (c *orderController) GetOrder(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	orderId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid order id"))
	}

	res, err := c.service.GetOrder(ctx.Context(), userId, orderId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order", res))
}

func (c *orderController) PayOrder(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	orderId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid order id"))
	}

	var req dto.PayOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.PayOrder(ctx.Context(), userId, orderId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment processed", res))
}

func (c *orderController) CancelOrder(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	orderId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid order id"))
	}

	if err := c.service.CancelOrder(ctx.Context(), userId, orderId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Order cancelled", nil))
}

func (c *orderController) Webhook(ctx *fiber.Ctx) error {
	var req dto.GatewayWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.SendStatus(fiber.StatusBadRequest)
	}

	if err := c.service.HandleGatewayNotification(ctx.Context(), &req); err != nil {
		// Non-200 makes the provider retry the notification.
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}
	return ctx.SendStatus(fiber.StatusOK)
}

func (c *orderController) MerchantQueue(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	status := ctx.Query("status")
	res, err := c.service.MerchantQueue(ctx.Context(), merchantId, status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order queue", res))
}

func (c *orderController) UpdateStatus(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	orderId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid order id"))
	}

	var req dto.UpdateOrderStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateOrderStatus(ctx.Context(), merchantId, orderId, req.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order status updated", res))
}

func (c *orderController) RefundOrder(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	orderId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid order id"))
	}

	if err := c.service.RefundOrder(ctx.Context(), merchantId, orderId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Order refunded", nil))
}
