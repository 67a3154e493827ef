package realtime

import "time"

// MessageType identifies a frame on the realtime channel.
type MessageType string

// Inbound message types recognized by the router.
const (
	MessageTypeJoinRoom     MessageType = "join_room"
	MessageTypePing         MessageType = "ping"
	MessageTypeAuthenticate MessageType = "authenticate"
)

// Outbound message types emitted by the server.
const (
	MessageTypePong              MessageType = "pong"
	MessageTypeHeartbeat         MessageType = "heartbeat"
	MessageTypeLeaderboardUpdate MessageType = "leaderboard_update"
	MessageTypeMarketUpdate      MessageType = "market_update"
	MessageTypePriceUpdate       MessageType = "price_update"
	MessageTypeTaskUpdate        MessageType = "task_update"
	MessageTypeUserTaskUpdate    MessageType = "user_task_update"
	MessageTypeUserStatsUpdate   MessageType = "user_stats_update"
)

// Rooms clients can join. RoomUserUpdates is a catch-all; targeted delivery
// goes through the user index instead.
const (
	RoomLeaderboard = "leaderboard"
	RoomMarkets     = "markets"
	RoomTasks       = "tasks"
	RoomUserUpdates = "user_updates"
)

func (mt MessageType) String() string {
	return string(mt)
}

// Message is the envelope for every frame on the channel.
type Message struct {
	Type MessageType `json:"type"`
	Data any         `json:"data,omitempty"`
}

func NewMessage(msgType MessageType, data any) *Message {
	return &Message{Type: msgType, Data: data}
}

// HeartbeatData is the payload of the periodic liveness frame.
type HeartbeatData struct {
	Timestamp   int64 `json:"timestamp"`
	Connections int   `json:"connections"`
}

func NewHeartbeatMessage(connections int) *Message {
	return NewMessage(MessageTypeHeartbeat, HeartbeatData{
		Timestamp:   time.Now().Unix(),
		Connections: connections,
	})
}

type joinRoomData struct {
	Room string `json:"room"`
}

type authenticateData struct {
	Token string `json:"token"`
}
