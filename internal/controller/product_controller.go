package controller

import (
	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/pkg/serverutils"
	"qr-dine-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	ListMenu(ctx *fiber.Ctx) error
	ListProducts(ctx *fiber.Ctx) error
	CreateProduct(ctx *fiber.Ctx) error
	UpdateProduct(ctx *fiber.Ctx) error
	DeleteProduct(ctx *fiber.Ctx) error
}

type productController struct {
	service service.IProductService
}

func NewProductController(service service.IProductService) IProductController {
	return &productController{service: service}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	// Public menu for the QR landing page
	r.Get("/menu/:merchantId", c.ListMenu)

	h := r.Group("/merchant/products", serverutils.MerchantJwtMiddleware)
	h.Get("/", c.ListProducts)
	h.Post("/", c.CreateProduct)
	h.Put("/:id", c.UpdateProduct)
	h.Delete("/:id", c.DeleteProduct)
}

func (c *productController) ListMenu(ctx *fiber.Ctx) error {
	merchantId, err := uuid.Parse(ctx.Params("merchantId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid merchant id"))
	}

	res, err := c.service.ListMenu(ctx.Context(), merchantId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Menu", res))
}

func (c *productController) ListProducts(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	res, err := c.service.ListProducts(ctx.Context(), merchantId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Products", res))
}

func (c *productController) CreateProduct(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	var req dto.ProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateProduct(ctx.Context(), merchantId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Product created", res))
}

func (c *productController) UpdateProduct(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	productId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid product id"))
	}

	var req dto.ProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProduct(ctx.Context(), merchantId, productId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Product updated", res))
}

func (c *productController) DeleteProduct(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	productId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid product id"))
	}

	if err := c.service.DeleteProduct(ctx.Context(), merchantId, productId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Product deleted", nil))
}
