package controller

import (
	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/pkg/serverutils"
	"qr-dine-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	RequestCode(ctx *fiber.Ctx) error
	VerifyCode(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/request-code", c.RequestCode)
	h.Post("/verify-code", c.VerifyCode)
}

func (c *authController) RequestCode(ctx *fiber.Ctx) error {
	var req dto.RequestCodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.RequestCode(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Verification code sent", nil))
}

func (c *authController) VerifyCode(ctx *fiber.Ctx) error {
	var req dto.VerifyCodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.VerifyCode(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}
