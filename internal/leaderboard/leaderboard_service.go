package leaderboard

import (
	"context"
	"log/slog"
	"sort"

	"dashboard-service/internal/events"
	"dashboard-service/internal/realtime"
	"dashboard-service/internal/user"
)

// Entry is one leaderboard row.
type Entry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Level    int    `json:"level"`
	WeeklyXP int64  `json:"weeklyXp"`
	XP       int64  `json:"xp"`
}

// Service derives the leaderboard ordering from user records: descending by
// weekly XP, ties kept in insertion order.
type Service struct {
	users   user.UserRepository
	emitter *events.Emitter
	logger  *slog.Logger
}

func NewService(users user.UserRepository, emitter *events.Emitter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:   users,
		emitter: emitter,
		logger:  logger,
	}
}

func (s *Service) GetLeaderboard(ctx context.Context) ([]Entry, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].WeeklyXP > users[j].WeeklyXP
	})

	entries := make([]Entry, 0, len(users))
	for i, u := range users {
		entries = append(entries, Entry{
			Rank:     i + 1,
			UserID:   u.ID,
			Username: u.Username,
			Avatar:   u.Avatar,
			Level:    u.Level,
			WeeklyXP: u.WeeklyXP,
			XP:       u.XP,
		})
	}
	return entries, nil
}

// Snapshot builds the leaderboard_update frame sent when a client joins the
// leaderboard room.
func (s *Service) Snapshot(ctx context.Context) (*realtime.Message, error) {
	entries, err := s.GetLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return realtime.NewMessage(realtime.MessageTypeLeaderboardUpdate, entries), nil
}

// Broadcast pushes the current ordering to the leaderboard room.
func (s *Service) Broadcast(ctx context.Context) {
	entries, err := s.GetLeaderboard(ctx)
	if err != nil {
		s.logger.Error("failed to compute leaderboard", "error", err)
		return
	}
	s.emitter.ToRoom(ctx, realtime.RoomLeaderboard, realtime.MessageTypeLeaderboardUpdate, entries)
}

// ResetWeeklyXP zeroes every user's weekly counter and broadcasts the fresh
// ordering.
func (s *Service) ResetWeeklyXP(ctx context.Context) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.WeeklyXP == 0 {
			continue
		}
		u.WeeklyXP = 0
		if err := s.users.Update(ctx, u); err != nil {
			s.logger.Error("failed to reset weekly xp", "userID", u.ID, "error", err)
		}
	}

	s.Broadcast(ctx)
	return nil
}
