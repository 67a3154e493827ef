package leaderboard

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartWeeklyReset schedules the weekly XP reset (Mondays at midnight UTC).
// The returned scheduler should be shut down with the server.
func (s *Service) StartWeeklyReset() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.WeeklyJob(1,
			gocron.NewWeekdays(time.Monday),
			gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0)),
		),
		gocron.NewTask(func() {
			if err := s.ResetWeeklyXP(context.Background()); err != nil {
				s.logger.Error("weekly xp reset failed", "error", err)
			} else {
				s.logger.Info("weekly xp reset complete")
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
