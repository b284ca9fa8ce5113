package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"faq-chatbot-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "chatbot:ws"

// ChatHandler produces the reply for one message
type ChatHandler func(ctx context.Context, userID, text string) string

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	handler ChatHandler

	// Redis fans replies out to the user's sockets on other instances
	rdb        *redis.Client
	instanceId string
	ready      chan struct{}

	logger logger.ILogger
}

// NewHub creates a hub. rdb may be nil for a single instance.
func NewHub(handler ChatHandler, rdb *redis.Client, instanceId string, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		handler:    handler,
		rdb:        rdb,
		instanceId: instanceId,
		ready:      make(chan struct{}),
		logger:     log,
	}
}

// Ready is closed once the hub accepts clients and, with Redis, is subscribed
func (h *Hub) Ready() <-chan struct{} {
	return h.ready
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		pubsub := h.rdb.Subscribe(ctx, clusterChannel)
		if _, err := pubsub.Receive(ctx); err != nil {
			h.logger.Warn("Hub", "Redis subscribe failed, replies stay local", map[string]interface{}{"error": err.Error()})
			pubsub.Close()
		} else {
			defer pubsub.Close()
			go h.consumeRedis(pubsub.Channel())
		}
	}
	close(h.ready)

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID, "conn_id": client.ID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// join and leave are no-ops once Run has returned
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.UserID]
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

// ClientCount returns the number of local connections for userID
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Send delivers data to every device of userID, here and on other instances
func (h *Hub) Send(userID string, data []byte) {
	h.deliverLocal(userID, data)

	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(clusterMessage{
		Origin:       h.instanceId,
		TargetUserID: userID,
		Message:      data,
	})
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"user_id": userID, "error": err.Error()})
	}
}

// deliverLocal never blocks; a slow client loses the frame
func (h *Hub) deliverLocal(userID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": userID})
		}
	}
}

type clusterMessage struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) consumeRedis(ch <-chan *redis.Message) {
	for msg := range ch {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		// Our own publishes were already delivered locally.
		if payload.Origin == h.instanceId {
			continue
		}
		h.deliverLocal(payload.TargetUserID, payload.Message)
	}
}
