package market

import (
	"errors"
	"net/http"

	"dashboard-service/internal/user"
	"dashboard-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	marketService MarketService
}

func NewMarketHandler(marketService MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// CreateMarket godoc
// @Summary Create a prediction market
// @Tags markets
func (h *MarketHandler) CreateMarket(c *gin.Context) {
	var req CreateMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	market, err := h.marketService.CreateMarket(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, market)
}

func (h *MarketHandler) ListMarkets(c *gin.Context) {
	markets, err := h.marketService.ListMarkets(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, markets)
}

func (h *MarketHandler) GetMarket(c *gin.Context) {
	market, err := h.marketService.GetMarket(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err)
		return
	}

	c.JSON(http.StatusOK, market)
}

// PlacePrediction godoc
// @Summary Stake BDAG on one side of a market
// @Tags markets
func (h *MarketHandler) PlacePrediction(c *gin.Context) {
	var req PlacePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	prediction, err := h.marketService.PlacePrediction(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMarketNotFound), errors.Is(err, user.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, err)
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrMarketClosed),
			errors.Is(err, user.ErrInsufficientBalance), errors.Is(err, user.ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, err)
		default:
			response.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusCreated, prediction)
}

func (h *MarketHandler) ListMyPredictions(c *gin.Context) {
	predictions, err := h.marketService.ListUserPredictions(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, predictions)
}
