package reward

import "time"

// Reward is the record issued when a user completes a task.
type Reward struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	TaskID   string    `json:"taskId"`
	XP       int64     `json:"xp"`
	Bdag     string    `json:"bdag"`
	IssuedAt time.Time `json:"issuedAt"`
}
