package user

import (
	"context"
	"sync"
)

// UserRepository is the storage contract for user records. The in-memory
// implementation below is the process-wide store; a database-backed one can
// slot in behind the same interface.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context) ([]*User, error)
}

type userRepository struct {
	mu    sync.RWMutex
	users map[string]*User
	order []string
}

// NewUserRepository builds the in-memory user store. Records are kept in
// insertion order so derived orderings (leaderboard ties) stay deterministic.
func NewUserRepository() UserRepository {
	return &userRepository{
		users: make(map[string]*User),
	}
}

func (r *userRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return ErrUserAlreadyExists
	}
	u := *user
	r.users[user.ID] = &u
	r.order = append(r.order, user.ID)
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.users[id].Email == email {
			cp := *r.users[id]
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *userRepository) Update(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *userRepository) List(_ context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*User, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.users[id]
		users = append(users, &cp)
	}
	return users, nil
}
