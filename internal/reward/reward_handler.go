package reward

import (
	"net/http"

	"dashboard-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	repo RewardRepository
}

func NewRewardHandler(repo RewardRepository) *RewardHandler {
	return &RewardHandler{repo: repo}
}

// ListMyRewards returns the rewards issued to the authenticated user.
func (h *RewardHandler) ListMyRewards(c *gin.Context) {
	rewards, err := h.repo.ListByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, rewards)
}
