package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles one chat connection until the peer goes away
func ServeWs(hub *Hub, c *websocket.Conn, userID string) {
	client := &Client{Hub: hub, Conn: c, ID: uuid.New(), UserID: userID, Send: make(chan []byte, 64)}
	if !hub.join(client) {
		c.Close()
		return
	}
	client.enqueue(encode("session", map[string]string{"user_id": userID}))

	go client.writePump()
	client.readPump()
}
