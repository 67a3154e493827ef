package achievement

import (
	"context"
	"sync"
)

type AchievementRepository interface {
	Create(ctx context.Context, achievement *Achievement) error
	FindByID(ctx context.Context, id string) (*Achievement, error)
	List(ctx context.Context) ([]*Achievement, error)
}

type achievementRepository struct {
	mu           sync.RWMutex
	achievements map[string]*Achievement
	order        []string
}

func NewAchievementRepository() AchievementRepository {
	return &achievementRepository{
		achievements: make(map[string]*Achievement),
	}
}

func (r *achievementRepository) Create(_ context.Context, achievement *Achievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := *achievement
	r.achievements[achievement.ID] = &a
	r.order = append(r.order, achievement.ID)
	return nil
}

func (r *achievementRepository) FindByID(_ context.Context, id string) (*Achievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.achievements[id]
	if !ok {
		return nil, ErrAchievementNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *achievementRepository) List(_ context.Context) ([]*Achievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	achievements := make([]*Achievement, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.achievements[id]
		achievements = append(achievements, &cp)
	}
	return achievements, nil
}
