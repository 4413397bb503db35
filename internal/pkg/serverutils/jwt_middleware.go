package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware authenticates customers. It sets "user_id" in locals.
func JwtMiddleware(ctx *fiber.Ctx) error {
	claims, failMsg := parseBearer(ctx)
	if failMsg != "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": failMsg})
	}

	ctx.Locals("user_id", claims["user_id"])
	return ctx.Next()
}

// MerchantJwtMiddleware authenticates merchant dashboard sessions. It
// requires the "merchant" role claim and sets "merchant_id" in locals.
func MerchantJwtMiddleware(ctx *fiber.Ctx) error {
	claims, failMsg := parseBearer(ctx)
	if failMsg != "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": failMsg})
	}

	if role, _ := claims["role"].(string); role != "merchant" {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Merchant access required"})
	}

	ctx.Locals("merchant_id", claims["merchant_id"])
	return ctx.Next()
}

func parseBearer(ctx *fiber.Ctx) (jwt.MapClaims, string) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, "Missing token"
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return nil, "Invalid token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "Invalid claims"
	}

	return claims, ""
}
