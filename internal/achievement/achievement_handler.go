package achievement

import (
	"net/http"

	"dashboard-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	achievementService AchievementService
}

func NewAchievementHandler(achievementService AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (h *AchievementHandler) CreateAchievement(c *gin.Context) {
	var req CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	achievement, err := h.achievementService.CreateAchievement(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, achievement)
}

func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	achievements, err := h.achievementService.ListAchievements(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, achievements)
}

func (h *AchievementHandler) GetAchievement(c *gin.Context) {
	achievement, err := h.achievementService.GetAchievement(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err)
		return
	}

	c.JSON(http.StatusOK, achievement)
}
