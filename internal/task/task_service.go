package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dashboard-service/internal/events"
	"dashboard-service/internal/leaderboard"
	"dashboard-service/internal/realtime"
	"dashboard-service/internal/reward"
	"dashboard-service/internal/user"

	"github.com/google/uuid"
)

// Custom errors
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrUserTaskNotFound = errors.New("user task not found")
	ErrTaskInactive     = errors.New("task is not active")
)

type TaskService interface {
	CreateTask(ctx context.Context, creatorID string, req *CreateTaskRequest) (*Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	StartTask(ctx context.Context, userID, taskID string) (*UserTask, bool, error)
	UpdateProgress(ctx context.Context, userID, taskID string, req *UpdateProgressRequest) (*UserTask, error)
	ListUserTasks(ctx context.Context, userID string) ([]*UserTask, error)
	Snapshot(ctx context.Context) (*realtime.Message, error)
}

type taskService struct {
	tasks       TaskRepository
	userTasks   UserTaskRepository
	users       user.UserRepository
	rewards     reward.RewardRepository
	leaderboard *leaderboard.Service
	emitter     *events.Emitter
	logger      *slog.Logger
}

func NewTaskService(
	tasks TaskRepository,
	userTasks UserTaskRepository,
	users user.UserRepository,
	rewards reward.RewardRepository,
	lb *leaderboard.Service,
	emitter *events.Emitter,
	logger *slog.Logger,
) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskService{
		tasks:       tasks,
		userTasks:   userTasks,
		users:       users,
		rewards:     rewards,
		leaderboard: lb,
		emitter:     emitter,
		logger:      logger,
	}
}

func (s *taskService) CreateTask(ctx context.Context, creatorID string, req *CreateTaskRequest) (*Task, error) {
	bdag := req.BdagReward
	if bdag == "" {
		bdag = "0"
	}
	amount, err := user.ParseAmount(bdag)
	if err != nil || amount < 0 {
		return nil, user.ErrInvalidAmount
	}

	task := &Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		MaxProgress: req.MaxProgress,
		XPReward:    req.XPReward,
		BdagReward:  bdag,
		CreatedBy:   creatorID,
		Active:      true,
		Created:     time.Now(),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.emitter.ToRoom(ctx, realtime.RoomTasks, realtime.MessageTypeTaskUpdate, task)
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (*Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *taskService) ListTasks(ctx context.Context) ([]*Task, error) {
	return s.tasks.List(ctx)
}

// StartTask begins the task for the user. Starting a task the user already
// has returns the existing record with created=false.
func (s *taskService) StartTask(ctx context.Context, userID, taskID string) (*UserTask, bool, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, false, ErrTaskNotFound
	}
	if !task.Active {
		return nil, false, ErrTaskInactive
	}

	if existing, err := s.userTasks.FindByTaskAndUser(ctx, taskID, userID); err == nil {
		return existing, false, nil
	}

	userTask := &UserTask{
		ID:       uuid.New().String(),
		TaskID:   taskID,
		UserID:   userID,
		Progress: 0,
		Status:   StatusInProgress,
		Started:  time.Now(),
	}
	if err := s.userTasks.Create(ctx, userTask); err != nil {
		return nil, false, err
	}

	s.emitter.ToUser(ctx, userID, realtime.MessageTypeUserTaskUpdate, userTask)
	return userTask, true, nil
}

// UpdateProgress writes the client-supplied progress value and triggers
// completion once it reaches the task's max. Completion is not guarded by
// status: a resent completing update issues the reward again.
func (s *taskService) UpdateProgress(ctx context.Context, userID, taskID string, req *UpdateProgressRequest) (*UserTask, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	userTask, err := s.userTasks.FindByTaskAndUser(ctx, taskID, userID)
	if err != nil {
		return nil, ErrUserTaskNotFound
	}

	userTask.Progress = *req.Progress

	if userTask.Progress >= task.MaxProgress {
		if err := s.complete(ctx, task, userTask); err != nil {
			return nil, err
		}
	}

	if err := s.userTasks.Update(ctx, userTask); err != nil {
		return nil, err
	}

	s.emitter.ToUser(ctx, userID, realtime.MessageTypeUserTaskUpdate, userTask)
	s.emitter.ToRoom(ctx, realtime.RoomTasks, realtime.MessageTypeTaskUpdate, task)
	return userTask, nil
}

// complete marks the user task done, issues the reward record and credits
// XP and BDAG to the user. The reward write lands before the balance update;
// there is no rollback if a later step fails.
func (s *taskService) complete(ctx context.Context, task *Task, userTask *UserTask) error {
	now := time.Now()
	userTask.Status = StatusCompleted
	userTask.CompletedAt = &now

	rw := &reward.Reward{
		ID:       uuid.New().String(),
		UserID:   userTask.UserID,
		TaskID:   task.ID,
		XP:       task.XPReward,
		Bdag:     task.BdagReward,
		IssuedAt: now,
	}
	if err := s.rewards.Create(ctx, rw); err != nil {
		return err
	}

	u, err := s.users.FindByID(ctx, userTask.UserID)
	if err != nil {
		return err
	}

	balance, err := user.AddBalance(u.BdagBalance, task.BdagReward)
	if err != nil {
		return err
	}
	u.BdagBalance = balance
	user.ApplyXP(u, task.XPReward)

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.logger.Info("task completed",
		"taskID", task.ID, "userID", u.ID, "xp", task.XPReward, "bdag", task.BdagReward)

	s.emitter.ToUser(ctx, u.ID, realtime.MessageTypeUserStatsUpdate, user.NewStatsPayload(u))
	s.leaderboard.Broadcast(ctx)
	return nil
}

func (s *taskService) ListUserTasks(ctx context.Context, userID string) ([]*UserTask, error) {
	return s.userTasks.ListByUser(ctx, userID)
}

// Snapshot builds the task_update frame sent when a client joins the tasks
// room.
func (s *taskService) Snapshot(ctx context.Context) (*realtime.Message, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	return realtime.NewMessage(realtime.MessageTypeTaskUpdate, tasks), nil
}
