package leaderboard

import (
	"net/http"

	"dashboard-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	service *Service
}

func NewLeaderboardHandler(service *Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// GetLeaderboard godoc
// @Summary Current weekly leaderboard
// @Tags leaderboard
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.service.GetLeaderboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
