package achievement

import "time"

// Achievement is a badge users can earn on the dashboard.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	XPBonus     int64     `json:"xpBonus"`
	Created     time.Time `json:"created"`
}

type CreateAchievementRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	XPBonus     int64  `json:"xpBonus" binding:"gte=0"`
}
