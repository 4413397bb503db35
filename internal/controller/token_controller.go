package controller

import (
	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/pkg/serverutils"
	"qr-dine-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITokenController interface {
	RegisterRoutes(r fiber.Router)
	ListTokenTypes(ctx *fiber.Ctx) error
	GetBalances(ctx *fiber.Ctx) error
	GetBalance(ctx *fiber.Ctx) error
	GetTransactions(ctx *fiber.Ctx) error
	PreviewRedemption(ctx *fiber.Ctx) error
	Redeem(ctx *fiber.Ctx) error
	RefundRedemption(ctx *fiber.Ctx) error
	Award(ctx *fiber.Ctx) error
}

type tokenController struct {
	service service.ITokenService
}

func NewTokenController(service service.ITokenService) ITokenController {
	return &tokenController{service: service}
}

func (c *tokenController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tokens")
	h.Get("/types", c.ListTokenTypes)

	h.Get("/balances", serverutils.JwtMiddleware, c.GetBalances)
	h.Get("/balances/:tokenTypeId", serverutils.JwtMiddleware, c.GetBalance)
	h.Get("/transactions", serverutils.JwtMiddleware, c.GetTransactions)
	h.Post("/redeem/preview", serverutils.JwtMiddleware, c.PreviewRedemption)
	h.Post("/redeem", serverutils.JwtMiddleware, c.Redeem)
	h.Post("/refund", serverutils.JwtMiddleware, c.RefundRedemption)

	h.Post("/award", serverutils.MerchantJwtMiddleware, c.Award)
}

func (c *tokenController) ListTokenTypes(ctx *fiber.Ctx) error {
	res, err := c.service.ListTokenTypes(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Token types", res))
}

func (c *tokenController) GetBalances(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	res, err := c.service.GetBalances(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Token balances", res))
}

func (c *tokenController) GetBalance(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	tokenTypeId, err := uuid.Parse(ctx.Params("tokenTypeId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid token type id"))
	}

	balance, err := c.service.GetBalance(ctx.Context(), userId, tokenTypeId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Token balance", fiber.Map{
		"token_type_id": tokenTypeId,
		"balance":       balance,
	}))
}

func (c *tokenController) GetTransactions(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	page := ctx.QueryInt("page", 1)
	perPage := ctx.QueryInt("per_page", 20)

	res, err := c.service.GetTransactions(ctx.Context(), userId, page, perPage)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Token transactions", res))
}

func (c *tokenController) PreviewRedemption(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	var req dto.RedemptionPreviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.PreviewRedemption(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Redemption preview", res))
}

func (c *tokenController) Redeem(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	var req dto.RedeemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Redeem(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tokens redeemed", res))
}

func (c *tokenController) RefundRedemption(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	var req dto.RefundRedemptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RefundRedemption(ctx.Context(), userId, req.RedemptionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tokens refunded", res))
}

func (c *tokenController) Award(ctx *fiber.Ctx) error {
	var req dto.AwardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Award(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tokens awarded", res))
}
