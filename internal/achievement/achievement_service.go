package achievement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAchievementNotFound = errors.New("achievement not found")

type AchievementService interface {
	CreateAchievement(ctx context.Context, req *CreateAchievementRequest) (*Achievement, error)
	GetAchievement(ctx context.Context, id string) (*Achievement, error)
	ListAchievements(ctx context.Context) ([]*Achievement, error)
}

type achievementService struct {
	repo AchievementRepository
}

func NewAchievementService(repo AchievementRepository) AchievementService {
	return &achievementService{repo: repo}
}

func (s *achievementService) CreateAchievement(ctx context.Context, req *CreateAchievementRequest) (*Achievement, error) {
	achievement := &Achievement{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		XPBonus:     req.XPBonus,
		Created:     time.Now(),
	}

	if err := s.repo.Create(ctx, achievement); err != nil {
		return nil, err
	}
	return achievement, nil
}

func (s *achievementService) GetAchievement(ctx context.Context, id string) (*Achievement, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *achievementService) ListAchievements(ctx context.Context) ([]*Achievement, error) {
	return s.repo.List(ctx)
}
