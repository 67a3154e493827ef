package reward

import (
	"context"
	"sync"
)

type RewardRepository interface {
	Create(ctx context.Context, reward *Reward) error
	ListByUser(ctx context.Context, userID string) ([]*Reward, error)
}

type rewardRepository struct {
	mu      sync.RWMutex
	rewards map[string]*Reward
	order   []string
}

func NewRewardRepository() RewardRepository {
	return &rewardRepository{
		rewards: make(map[string]*Reward),
	}
}

func (r *rewardRepository) Create(_ context.Context, reward *Reward) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rw := *reward
	r.rewards[reward.ID] = &rw
	r.order = append(r.order, reward.ID)
	return nil
}

func (r *rewardRepository) ListByUser(_ context.Context, userID string) ([]*Reward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rewards []*Reward
	for _, id := range r.order {
		if r.rewards[id].UserID == userID {
			cp := *r.rewards[id]
			rewards = append(rewards, &cp)
		}
	}
	return rewards, nil
}
