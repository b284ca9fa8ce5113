package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// ID distinguishes several devices of one user
	ID uuid.UUID

	// UserID is the conversation key
	UserID string

	// Buffered channel of outbound messages.
	Send chan []byte
}

// Inbound is what a browser sends
type Inbound struct {
	Message string `json:"message"`
}

// Outbound frames carry a type so the client can tell replies from errors
type Outbound struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func encode(kind string, data interface{}) []byte {
	b, _ := json.Marshal(Outbound{Type: kind, Data: data})
	return b
}

// readPump reads chat messages and answers each one before reading the next,
// so one connection never has two messages in flight.
func (c *Client) readPump() {
	defer func() {
		c.Hub.leave(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WebSocket", "Unexpected close", map[string]interface{}{
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			break
		}

		var in Inbound
		if err := json.Unmarshal(data, &in); err != nil || in.Message == "" {
			c.enqueue(encode("error", map[string]string{"message": `expected {"message": "..."}`}))
			continue
		}

		reply := c.Hub.handler(context.Background(), c.UserID, in.Message)
		c.Hub.Send(c.UserID, encode("reply", map[string]string{
			"message":  in.Message,
			"response": reply,
		}))
	}
}

// enqueue sends to this connection only
func (c *Client) enqueue(data []byte) {
	select {
	case c.Send <- data:
	default:
		c.Hub.logger.Warn("WebSocket", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": c.UserID})
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One JSON document per frame.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
