package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var ErrClientDisconnected = errors.New("client disconnected")

// Hub is the connection registry and room broadcaster. Clients are indexed by
// room and by user identity so a broadcast only walks its own audience.
type Hub struct {
	mu sync.RWMutex

	// Registered clients
	clients map[*Client]bool

	// Client lookup by user ID
	userClients map[string]map[*Client]bool

	// Client lookup by joined room
	roomClients map[string]map[*Client]bool

	heartbeatInterval time.Duration
	logger            *slog.Logger
}

func NewHub(heartbeatInterval time.Duration, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if heartbeatInterval <= 0 {
		heartbeatInterval = 30 * time.Second
	}

	return &Hub{
		clients:           make(map[*Client]bool),
		userClients:       make(map[string]map[*Client]bool),
		roomClients:       make(map[string]map[*Client]bool),
		heartbeatInterval: heartbeatInterval,
		logger:            logger,
	}
}

// Register adds a client to the registry and starts its heartbeat ticker.
// Registering an already-registered client is a no-op.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	if h.clients[client] {
		h.mu.Unlock()
		return
	}
	h.clients[client] = true
	h.mu.Unlock()

	h.logger.Info("client registered", "clientID", client.id)

	go h.heartbeatLoop(client)
}

// Unregister removes a client from every index and closes its connection.
// Idempotent on already-absent clients.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if !h.clients[client] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)

	for room := range client.rooms {
		if set := h.roomClients[room]; set != nil {
			delete(set, client)
			if len(set) == 0 {
				delete(h.roomClients, room)
			}
		}
	}
	if client.userID != "" {
		if set := h.userClients[client.userID]; set != nil {
			delete(set, client)
			if len(set) == 0 {
				delete(h.userClients, client.userID)
			}
		}
	}
	h.mu.Unlock()

	client.close()
	h.logger.Info("client unregistered", "clientID", client.id, "userID", client.userID)
}

// JoinRoom adds the client to a room. Duplicate joins collapse; joining on an
// unregistered client is a no-op.
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[client] {
		return
	}

	client.mu.Lock()
	client.rooms[room] = true
	client.mu.Unlock()

	if h.roomClients[room] == nil {
		h.roomClients[room] = make(map[*Client]bool)
	}
	h.roomClients[room][client] = true
}

// SetUserID attaches a user identity to the client. The identity is set once;
// later calls are no-ops.
func (h *Hub) SetUserID(client *Client, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[client] || userID == "" {
		return
	}

	client.mu.Lock()
	if client.userID != "" {
		client.mu.Unlock()
		return
	}
	client.userID = userID
	client.mu.Unlock()

	if h.userClients[userID] == nil {
		h.userClients[userID] = make(map[*Client]bool)
	}
	h.userClients[userID][client] = true
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastToRoom serializes the message once and delivers it to every open
// connection joined to the room. Closed or failing connections are skipped
// and cleaned out of the registry; no error surfaces to the caller.
func (h *Hub) BroadcastToRoom(room string, msg *Message) {
	h.broadcast(h.snapshotRoom(room), msg)
}

// BroadcastToUser delivers the message to every open connection authenticated
// as the given user.
func (h *Hub) BroadcastToUser(userID string, msg *Message) {
	h.broadcast(h.snapshotUser(userID), msg)
}

func (h *Hub) snapshotRoom(room string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := make([]*Client, 0, len(h.roomClients[room]))
	for client := range h.roomClients[room] {
		targets = append(targets, client)
	}
	return targets
}

func (h *Hub) snapshotUser(userID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := make([]*Client, 0, len(h.userClients[userID]))
	for client := range h.userClients[userID] {
		targets = append(targets, client)
	}
	return targets
}

func (h *Hub) broadcast(targets []*Client, msg *Message) {
	if len(targets) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message", "type", msg.Type, "error", err)
		return
	}

	for _, client := range targets {
		if err := h.send(client, data); err != nil {
			h.logger.Debug("dropping client after failed write", "clientID", client.id, "error", err)
			h.Unregister(client)
		}
	}
}

// Send delivers a message to a single client.
func (h *Hub) Send(client *Client, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return h.send(client, data)
}

func (h *Hub) send(client *Client, data []byte) error {
	if client.isClosed() {
		return ErrClientDisconnected
	}
	return client.write(data)
}

// heartbeatLoop sends a liveness frame with the current connection count
// until the client goes away.
func (h *Hub) heartbeatLoop(client *Client) {
	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := h.Send(client, NewHeartbeatMessage(h.ConnectionCount())); err != nil {
				h.Unregister(client)
				return
			}
		case <-client.done:
			return
		}
	}
}
