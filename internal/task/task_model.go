package task

import "time"

// UserTask statuses.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

/** --------------------ENTITIES-------------------- */
// Task is a completable activity that pays out XP and BDAG.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MaxProgress int       `json:"maxProgress"`
	XPReward    int64     `json:"xpReward"`
	BdagReward  string    `json:"bdagReward"`
	CreatedBy   string    `json:"createdBy"`
	Active      bool      `json:"active"`
	Created     time.Time `json:"created"`
}

// UserTask tracks one user's progress on a task. Progress is set to the
// client-supplied value, not incremented.
type UserTask struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"taskId"`
	UserID      string     `json:"userId"`
	Progress    int        `json:"progress"`
	Status      string     `json:"status"`
	Started     time.Time  `json:"started"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

/** -------------------- DTOs -------------------- */
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	MaxProgress int    `json:"maxProgress" binding:"required,gt=0"`
	XPReward    int64  `json:"xpReward" binding:"gte=0"`
	BdagReward  string `json:"bdagReward"`
}

type UpdateProgressRequest struct {
	Progress *int `json:"progress" binding:"required,gte=0"`
}
