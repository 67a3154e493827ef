package task

import (
	"context"
	"testing"
	"time"

	"dashboard-service/internal/events"
	"dashboard-service/internal/leaderboard"
	"dashboard-service/internal/realtime"
	"dashboard-service/internal/reward"
	"dashboard-service/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

type taskFixture struct {
	svc     TaskService
	users   user.UserRepository
	rewards reward.RewardRepository
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	users := user.NewUserRepository()
	rewards := reward.NewRewardRepository()
	emitter := events.NewEmitter(realtime.NewHub(time.Hour, nil), nil, nil)
	lb := leaderboard.NewService(users, emitter, nil)

	return &taskFixture{
		svc:     NewTaskService(NewTaskRepository(), NewUserTaskRepository(), users, rewards, lb, emitter, nil),
		users:   users,
		rewards: rewards,
	}
}

func (f *taskFixture) seedUser(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), &user.User{
		ID:          id,
		Username:    "worker-" + id,
		Email:       id + "@example.com",
		BdagBalance: "0",
		Level:       1,
	}))
}

func (f *taskFixture) seedTask(t *testing.T, maxProgress int, xp int64, bdag string) *Task {
	t.Helper()
	task, err := f.svc.CreateTask(context.Background(), "validator-1", &CreateTaskRequest{
		Title:       "Place 3 predictions",
		MaxProgress: maxProgress,
		XPReward:    xp,
		BdagReward:  bdag,
	})
	require.NoError(t, err)
	return task
}

func TestCreateTaskDefaults(t *testing.T) {
	f := newTaskFixture(t)

	task := f.seedTask(t, 3, 50, "")

	assert.True(t, task.Active)
	assert.Equal(t, "0", task.BdagReward, "empty reward normalizes to zero")
	assert.Equal(t, "validator-1", task.CreatedBy)
}

func TestCreateTaskRejectsUnparsableReward(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.svc.CreateTask(context.Background(), "validator-1", &CreateTaskRequest{
		Title:       "Broken",
		MaxProgress: 1,
		BdagReward:  "lots",
	})
	assert.ErrorIs(t, err, user.ErrInvalidAmount)
}

// A negative reward would turn completion payout into a debit; creation
// refuses it outright.
func TestCreateTaskRejectsNegativeReward(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.svc.CreateTask(context.Background(), "validator-1", &CreateTaskRequest{
		Title:       "Pay to play",
		MaxProgress: 1,
		BdagReward:  "-10",
	})
	assert.ErrorIs(t, err, user.ErrInvalidAmount)
}

func TestStartTask(t *testing.T) {
	f := newTaskFixture(t)
	f.seedUser(t, "user-1")
	task := f.seedTask(t, 3, 50, "10")

	userTask, created, err := f.svc.StartTask(context.Background(), "user-1", task.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 0, userTask.Progress)
	assert.Equal(t, StatusInProgress, userTask.Status)
	assert.Nil(t, userTask.CompletedAt)
}

func TestStartTaskTwiceReturnsExisting(t *testing.T) {
	f := newTaskFixture(t)
	f.seedUser(t, "user-1")
	task := f.seedTask(t, 3, 50, "10")

	first, created, err := f.svc.StartTask(context.Background(), "user-1", task.ID)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := f.svc.StartTask(context.Background(), "user-1", task.ID)
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}

func TestStartUnknownTask(t *testing.T) {
	f := newTaskFixture(t)
	f.seedUser(t, "user-1")

	_, _, err := f.svc.StartTask(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdateProgressWritesSuppliedValue(t *testing.T) {
	f := newTaskFixture(t)
	f.seedUser(t, "user-1")
	task := f.seedTask(t, 5, 50, "10")
	_, _, err := f.svc.StartTask(context.Background(), "user-1", task.ID)
	require.NoError(t, err)

	userTask, err := f.svc.UpdateProgress(context.Background(), "user-1", task.ID, &UpdateProgressRequest{Progress: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, userTask.Progress)
	assert.Equal(t, StatusInProgress, userTask.Status)

	// The value is written as supplied, so it can also move backwards.
	userTask, err = f.svc.UpdateProgress(context.Background(), "user-1", task.ID, &UpdateProgressRequest{Progress: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, userTask.Progress)
}

func TestUpdateProgressCompletesAndPaysOut(t *testing.T) {
	f := newTaskFixture(t)
	f.seedUser(t, "user-1")
	task := f.seedTask(t, 3, 150, "25")
	_, _, err := f.svc.StartTask(context.Background(), "user-1", task.ID)
	require.NoError(t, err)

	userTask, err := f.svc.UpdateProgress(context.Background(), "user-1", task.ID, &UpdateProgressRequest{Progress: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, userTask.Status)
	require.NotNil(t, userTask.CompletedAt)

	u, err := f.users.FindByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "25", u.BdagBalance)
	assert.Equal(t, int64(150), u.XP)
	assert.Equal(t, int64(150), u.WeeklyXP)

	issued, err := f.rewards.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, issued, 1)
	assert.Equal(t, task.ID, issued[0].TaskID)
	assert.Equal(t, int64(150), issued[0].XP)
	assert.Equal(t, "25", issued[0].Bdag)
}

// Completion is keyed on the progress value alone, so resending the
// completing update pays the reward out again. Documented behavior until
// payout gets an idempotency key.
func TestUpdateProgressResendPaysTwice(t *testing.T) {
	f := newTaskFixture(t)
	f.seedUser(t, "user-1")
	task := f.seedTask(t, 3, 100, "10")
	_, _, err := f.svc.StartTask(context.Background(), "user-1", task.ID)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := f.svc.UpdateProgress(context.Background(), "user-1", task.ID, &UpdateProgressRequest{Progress: intPtr(3)})
		require.NoError(t, err)
	}

	issued, err := f.rewards.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, issued, 2)

	u, err := f.users.FindByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "20", u.BdagBalance)
	assert.Equal(t, int64(200), u.XP)
}

func TestUpdateProgressWithoutStart(t *testing.T) {
	f := newTaskFixture(t)
	f.seedUser(t, "user-1")
	task := f.seedTask(t, 3, 50, "10")

	_, err := f.svc.UpdateProgress(context.Background(), "user-1", task.ID, &UpdateProgressRequest{Progress: intPtr(1)})
	assert.ErrorIs(t, err, ErrUserTaskNotFound)
}

func TestStartInactiveTask(t *testing.T) {
	f := newTaskFixture(t)
	f.seedUser(t, "user-1")

	tasks := NewTaskRepository()
	require.NoError(t, tasks.Create(context.Background(), &Task{ID: "t-off", Title: "Retired", MaxProgress: 1}))
	emitter := events.NewEmitter(realtime.NewHub(time.Hour, nil), nil, nil)
	svc := NewTaskService(tasks, NewUserTaskRepository(), f.users, reward.NewRewardRepository(), leaderboard.NewService(f.users, emitter, nil), emitter, nil)

	_, _, err := svc.StartTask(context.Background(), "user-1", "t-off")
	assert.ErrorIs(t, err, ErrTaskInactive)
}
