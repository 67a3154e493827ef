package task

import (
	"errors"
	"net/http"

	"dashboard-service/internal/user"
	"dashboard-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService TaskService
}

func NewTaskHandler(taskService TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask godoc
// @Summary Create a task (validator only)
// @Tags tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAmount) {
			response.Error(c, http.StatusBadRequest, err)
			return
		}
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) StartTask(c *gin.Context) {
	userTask, created, err := h.taskService.StartTask(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound):
			response.Error(c, http.StatusNotFound, err)
		case errors.Is(err, ErrTaskInactive):
			response.Error(c, http.StatusBadRequest, err)
		default:
			response.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	if !created {
		c.JSON(http.StatusOK, userTask)
		return
	}
	c.JSON(http.StatusCreated, userTask)
}

// UpdateProgress godoc
// @Summary Set task progress; completion pays out the reward
// @Tags tasks
func (h *TaskHandler) UpdateProgress(c *gin.Context) {
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}

	userTask, err := h.taskService.UpdateProgress(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrUserTaskNotFound), errors.Is(err, user.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, err)
		default:
			response.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusOK, userTask)
}

func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userTasks, err := h.taskService.ListUserTasks(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, userTasks)
}
