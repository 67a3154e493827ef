package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// Conn is the subset of *websocket.Conn the hub needs. Tests substitute a
// mock implementation.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	Close() error
}

// Client is one live realtime connection: its room membership set and the
// user identity attached once via an authenticate frame.
type Client struct {
	id     string
	conn   Conn
	userID string
	rooms  map[string]bool

	closed  int32
	done    chan struct{}
	mu      sync.RWMutex
	writeMu sync.Mutex
}

func NewClient(conn Conn) *Client {
	return &Client{
		id:    uuid.New().String(),
		conn:  conn,
		rooms: make(map[string]bool),
		done:  make(chan struct{}),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) Rooms() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

func (c *Client) InRoom(room string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rooms[room]
}

func (c *Client) isClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

// close marks the client closed and stops its heartbeat ticker. Safe to call
// more than once.
func (c *Client) close() {
	if atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		close(c.done)
		c.conn.Close()
	}
}

// write sends a single text frame. Writes are serialized under their own
// mutex, separate from the state mutex, so a peer stalled up to the write
// deadline never blocks room or identity changes. A closed client reports
// ErrClientDisconnected without touching the connection.
func (c *Client) write(data []byte) error {
	if c.isClosed() {
		return ErrClientDisconnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
