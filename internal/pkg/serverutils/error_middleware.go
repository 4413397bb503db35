package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"qr-dine-be/internal/pkg/apperr"
)

// ErrorHandlerMiddleware converts typed service failures into JSON error
// envelopes. Untyped errors become a generic 500 so internals never leak.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperr.From(err); ok {
			body := ErrorBody{
				Success: false,
				Code:    appErr.HTTPStatus(),
				Message: appErr.Message,
				Details: appErr.Details,
			}
			return ctx.Status(appErr.HTTPStatus()).JSON(body)
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
