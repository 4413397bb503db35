package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// userIdFromCtx reads the authenticated customer id set by the JWT
// middleware.
func userIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing user id in context")
	}
	return uuid.Parse(raw)
}

// merchantIdFromCtx reads the authenticated merchant id set by the merchant
// JWT middleware.
func merchantIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("merchant_id").(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing merchant id in context")
	}
	return uuid.Parse(raw)
}
