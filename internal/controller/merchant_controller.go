package controller

import (
	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/pkg/logger"
	"qr-dine-be/internal/pkg/serverutils"
	"qr-dine-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMerchantController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	GetSettings(ctx *fiber.Ctx) error
	UpdateSettings(ctx *fiber.Ctx) error
	ListRewardRules(ctx *fiber.Ctx) error
	CreateRewardRule(ctx *fiber.Ctx) error
	UpdateRewardRule(ctx *fiber.Ctx) error
	DeleteRewardRule(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type merchantController struct {
	service service.IMerchantService
	logger  logger.ILogger
}

func NewMerchantController(service service.IMerchantService, log logger.ILogger) IMerchantController {
	return &merchantController{service: service, logger: log}
}

func (c *merchantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/merchant")
	h.Post("/login", c.Login)

	h.Get("/settings", serverutils.MerchantJwtMiddleware, c.GetSettings)
	h.Put("/settings", serverutils.MerchantJwtMiddleware, c.UpdateSettings)

	h.Get("/reward-rules", serverutils.MerchantJwtMiddleware, c.ListRewardRules)
	h.Post("/reward-rules", serverutils.MerchantJwtMiddleware, c.CreateRewardRule)
	h.Put("/reward-rules/:id", serverutils.MerchantJwtMiddleware, c.UpdateRewardRule)
	h.Delete("/reward-rules/:id", serverutils.MerchantJwtMiddleware, c.DeleteRewardRule)

	h.Get("/logs", serverutils.MerchantJwtMiddleware, c.GetLogs)
}

func (c *merchantController) Login(ctx *fiber.Ctx) error {
	var req dto.MerchantLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *merchantController) GetSettings(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	res, err := c.service.GetSettings(ctx.Context(), merchantId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Merchant settings", res))
}

func (c *merchantController) UpdateSettings(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	var req dto.UpdateMerchantSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateSettings(ctx.Context(), merchantId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Settings updated", res))
}

func (c *merchantController) ListRewardRules(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	res, err := c.service.ListRewardRules(ctx.Context(), merchantId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Reward rules", res))
}

func (c *merchantController) CreateRewardRule(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	var req dto.RewardRuleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateRewardRule(ctx.Context(), merchantId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Reward rule created", res))
}

func (c *merchantController) UpdateRewardRule(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	ruleId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid rule id"))
	}

	var req dto.RewardRuleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateRewardRule(ctx.Context(), merchantId, ruleId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Reward rule updated", res))
}

func (c *merchantController) DeleteRewardRule(ctx *fiber.Ctx) error {
	merchantId, err := merchantIdFromCtx(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid session"))
	}

	ruleId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid rule id"))
	}

	if err := c.service.DeleteRewardRule(ctx.Context(), merchantId, ruleId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Reward rule deleted", nil))
}

func (c *merchantController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "failed to read logs"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs", logs))
}
