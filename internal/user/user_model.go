package user

import "time"

// Roles gate write operations: basic users cannot create markets, only
// validators can create tasks.
const (
	RoleBasic     = "basic"
	RoleValidator = "validator"
	RoleAdmin     = "admin"
)

/** --------------------ENTITIES-------------------- */
// User represents a dashboard account. BdagBalance is a simulated currency
// balance kept as a decimal string with no real-asset backing.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	WalletAddress string    `json:"walletAddress"`
	Role          string    `json:"role"`
	BdagBalance   string    `json:"bdagBalance"`
	XP            int64     `json:"xp"`
	WeeklyXP      int64     `json:"weeklyXp"`
	Level         int       `json:"level"`
	Avatar        string    `json:"avatar"`
	Created       time.Time `json:"created"`
}

/** -------------------- DTOs -------------------- */
// Request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// UpdateWalletRequest merges the provided fields onto the user record; nil
// fields are left untouched.
type UpdateWalletRequest struct {
	WalletAddress *string `json:"walletAddress"`
	BdagBalance   *string `json:"bdagBalance"`
}

// Response
type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	WalletAddress string    `json:"walletAddress"`
	Role          string    `json:"role"`
	BdagBalance   string    `json:"bdagBalance"`
	XP            int64     `json:"xp"`
	WeeklyXP      int64     `json:"weeklyXp"`
	Level         int       `json:"level"`
	Avatar        string    `json:"avatar"`
	Created       time.Time `json:"created"`
}

// StatsPayload is the body of user_stats_update frames.
type StatsPayload struct {
	UserID      string `json:"userId"`
	BdagBalance string `json:"bdagBalance"`
	XP          int64  `json:"xp"`
	WeeklyXP    int64  `json:"weeklyXp"`
	Level       int    `json:"level"`
}

func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		WalletAddress: u.WalletAddress,
		Role:          u.Role,
		BdagBalance:   u.BdagBalance,
		XP:            u.XP,
		WeeklyXP:      u.WeeklyXP,
		Level:         u.Level,
		Avatar:        u.Avatar,
		Created:       u.Created,
	}
}

func NewStatsPayload(u *User) StatsPayload {
	return StatsPayload{
		UserID:      u.ID,
		BdagBalance: u.BdagBalance,
		XP:          u.XP,
		WeeklyXP:    u.WeeklyXP,
		Level:       u.Level,
	}
}
