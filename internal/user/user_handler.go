package user

import (
	"errors"
	"net/http"

	"dashboard-service/internal/adapters/storage"
	"dashboard-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService UserService
	uploads     *storage.MinIOClient
}

// NewUserHandler wires the user endpoints. uploads may be nil when no object
// storage is configured; the avatar endpoint then reports unavailable.
func NewUserHandler(userService UserService, uploads *storage.MinIOClient) *UserHandler {
	return &UserHandler{userService: userService, uploads: uploads}
}

// Register godoc
// @Summary Create a dashboard account
// @Tags auth
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.Error(c, http.StatusBadRequest, err)
			return
		}
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags auth
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	token, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, err)
			return
		}
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateWallet godoc
// @Summary Update wallet address and simulated balance
// @Tags users
func (h *UserHandler) UpdateWallet(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	profile, err := h.userService.UpdateWallet(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, err)
		case errors.Is(err, ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, err)
		default:
			response.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	if h.uploads == nil {
		response.Error(c, http.StatusServiceUnavailable, errors.New("object storage is not configured"))
		return
	}

	userID := c.GetString("user_id")

	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	url, err := h.uploads.UploadAvatar(c.Request.Context(), file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	profile, err := h.userService.SetAvatar(c.Request.Context(), userID, url)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
