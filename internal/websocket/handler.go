// FILE: internal/websocket/handler.go
package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a viewer connection to the hub for the given gift.
func ServeWs(hub *Hub, c *websocket.Conn, giftId string) {
	client := &Client{Hub: hub, Conn: c, GiftID: giftId, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // run in the handler goroutine
}
