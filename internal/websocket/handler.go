package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the merchant dashboard.
func ServeWs(hub *Hub, c *websocket.Conn, merchantID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, MerchantID: merchantID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
