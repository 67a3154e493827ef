package events

import (
	"context"
	"log/slog"

	"dashboard-service/internal/realtime"
)

// Publisher hands emitted events to an external stream. Implementations are
// best-effort; a nil Publisher disables publishing entirely.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Emitter is the single path domain services use to push state changes out:
// every event is broadcast over the realtime hub and, when configured,
// published to the event stream.
type Emitter struct {
	hub       *realtime.Hub
	publisher Publisher
	logger    *slog.Logger
}

func NewEmitter(hub *realtime.Hub, publisher Publisher, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Emitter{
		hub:       hub,
		publisher: publisher,
		logger:    logger,
	}
}

// ToRoom broadcasts a typed frame to every connection in the room.
func (e *Emitter) ToRoom(ctx context.Context, room string, msgType realtime.MessageType, data any) {
	e.hub.BroadcastToRoom(room, realtime.NewMessage(msgType, data))
	e.publish(ctx, msgType, data)
}

// ToUser delivers a typed frame to every connection authenticated as the user.
func (e *Emitter) ToUser(ctx context.Context, userID string, msgType realtime.MessageType, data any) {
	e.hub.BroadcastToUser(userID, realtime.NewMessage(msgType, data))
	e.publish(ctx, msgType, data)
}

func (e *Emitter) publish(ctx context.Context, msgType realtime.MessageType, data any) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, msgType.String(), data); err != nil {
		e.logger.Error("failed to publish event", "type", msgType, "error", err)
	}
}
