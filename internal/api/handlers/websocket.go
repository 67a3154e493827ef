package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"dashboard-service/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1") {
			return true
		}
		for _, allowed := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
			if origin == strings.TrimSpace(allowed) {
				return true
			}
		}
		return false
	},
}

// WSHandler upgrades HTTP requests and hands the connection to the realtime
// router.
type WSHandler struct {
	hub      *realtime.Hub
	router   *realtime.Router
	verifier realtime.TokenVerifier
	logger   *slog.Logger
}

func NewWSHandler(hub *realtime.Hub, router *realtime.Router, verifier realtime.TokenVerifier, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		hub:      hub,
		router:   router,
		verifier: verifier,
		logger:   logger,
	}
}

// HandleWebSocket godoc
// @Summary Open a realtime connection
// @Router /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := realtime.NewClient(conn)
	h.hub.Register(client)

	// The token query parameter is optional. Anonymous connections can
	// still join rooms and receive broadcasts.
	if token := c.Query("token"); token != "" && h.verifier != nil {
		if userID, err := h.verifier.VerifyToken(token); err == nil {
			h.hub.SetUserID(client, userID)
		} else {
			h.logger.Warn("websocket token rejected", "error", err)
		}
	}

	h.router.Serve(c.Request.Context(), client)
}
