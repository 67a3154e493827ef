package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// TokenVerifier resolves an opaque signed token to a user ID. Verification is
// best-effort: a failure leaves the connection unauthenticated.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// SnapshotFunc produces the initial state frame sent when a client joins a
// recognized room.
type SnapshotFunc func(ctx context.Context) (*Message, error)

// Router parses inbound frames on a connection and dispatches join_room, ping
// and authenticate messages. Everything else is logged and dropped; the
// connection always stays open.
type Router struct {
	hub      *Hub
	verifier TokenVerifier
	logger   *slog.Logger

	mu        sync.RWMutex
	snapshots map[string]SnapshotFunc
}

func NewRouter(hub *Hub, verifier TokenVerifier, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{
		hub:       hub,
		verifier:  verifier,
		logger:    logger,
		snapshots: make(map[string]SnapshotFunc),
	}
}

// RegisterSnapshot binds a room name to its initial state query. Rooms
// without a snapshot join silently.
func (r *Router) RegisterSnapshot(room string, fn SnapshotFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[room] = fn
}

func (r *Router) snapshot(room string) (SnapshotFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.snapshots[room]
	return fn, ok
}

// Serve registers the client and pumps inbound frames until the connection
// closes or errors, then cleans up the registry entry.
func (r *Router) Serve(ctx context.Context, client *Client) {
	r.hub.Register(client)
	defer r.hub.Unregister(client)

	client.conn.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				r.logger.Error("websocket read error", "clientID", client.id, "error", err)
			} else {
				r.logger.Debug("websocket connection closed", "clientID", client.id)
			}
			return
		}

		r.HandleMessage(ctx, client, raw)
	}
}

// HandleMessage processes one inbound frame. Parse failures and handler
// errors are caught and logged; no reply is sent for malformed or unknown
// messages.
func (r *Router) HandleMessage(ctx context.Context, client *Client, raw []byte) {
	var msg struct {
		Type MessageType     `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		r.logger.Error("failed to parse inbound message", "clientID", client.id, "error", err)
		return
	}

	switch msg.Type {
	case MessageTypeJoinRoom:
		r.handleJoinRoom(ctx, client, msg.Data)

	case MessageTypePing:
		if err := r.hub.Send(client, NewMessage(MessageTypePong, nil)); err != nil {
			r.logger.Debug("pong not delivered", "clientID", client.id, "error", err)
		}

	case MessageTypeAuthenticate:
		r.handleAuthenticate(client, msg.Data)

	default:
		r.logger.Warn("unknown message type", "clientID", client.id, "type", msg.Type)
	}
}

func (r *Router) handleJoinRoom(ctx context.Context, client *Client, data json.RawMessage) {
	var payload joinRoomData
	if err := json.Unmarshal(data, &payload); err != nil || payload.Room == "" {
		r.logger.Error("join_room without a room field", "clientID", client.id)
		return
	}

	r.hub.JoinRoom(client, payload.Room)
	r.logger.Info("client joined room", "clientID", client.id, "room", payload.Room)

	// Recognized rooms get an initial snapshot; the rest join silently.
	fn, ok := r.snapshot(payload.Room)
	if !ok {
		return
	}

	snapshot, err := fn(ctx)
	if err != nil {
		r.logger.Error("failed to build room snapshot", "room", payload.Room, "error", err)
		return
	}
	if err := r.hub.Send(client, snapshot); err != nil {
		r.logger.Debug("snapshot not delivered", "clientID", client.id, "error", err)
	}
}

func (r *Router) handleAuthenticate(client *Client, data json.RawMessage) {
	var payload authenticateData
	if err := json.Unmarshal(data, &payload); err != nil || payload.Token == "" {
		r.logger.Error("authenticate without a token", "clientID", client.id)
		return
	}

	if r.verifier == nil {
		r.logger.Warn("authenticate received but no verifier configured", "clientID", client.id)
		return
	}

	userID, err := r.verifier.VerifyToken(payload.Token)
	if err != nil {
		// Best effort: the connection stays open, just unauthenticated.
		r.logger.Error("token verification failed", "clientID", client.id, "error", err)
		return
	}

	r.hub.SetUserID(client, userID)
	r.logger.Info("client authenticated", "clientID", client.id, "userID", userID)
}
