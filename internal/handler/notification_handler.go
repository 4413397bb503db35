package handler

import (
	"qr-dine-be/internal/pkg/logger"
	internalWS "qr-dine-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NotificationHandler upgrades merchant dashboard connections to websockets
// so the kitchen display receives order events in real time.
type NotificationHandler struct {
	hub       *internalWS.Hub
	logger    logger.ILogger
	jwtSecret string
}

func NewNotificationHandler(hub *internalWS.Hub, log logger.ILogger, jwtSecret string) *NotificationHandler {
	return &NotificationHandler{
		hub:       hub,
		logger:    log,
		jwtSecret: jwtSecret,
	}
}

// ServeWs handles websocket requests from the merchant dashboard.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	// Priority 1: Query Param (browsers cannot set headers on WS handshakes)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (tooling/non-browser clients)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	if role, _ := claims["role"].(string); role != "merchant" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Merchant token required"})
	}

	merchantIDStr, ok := claims["merchant_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing merchant_id"})
	}

	merchantID, err := uuid.Parse(merchantIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid merchant ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"merchant_id": merchantID})
			internalWS.ServeWs(h.hub, c, merchantID)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"merchant_id": merchantID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
