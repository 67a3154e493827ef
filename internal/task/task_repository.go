package task

import (
	"context"
	"sync"
)

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
}

type UserTaskRepository interface {
	Create(ctx context.Context, userTask *UserTask) error
	FindByTaskAndUser(ctx context.Context, taskID, userID string) (*UserTask, error)
	Update(ctx context.Context, userTask *UserTask) error
	ListByUser(ctx context.Context, userID string) ([]*UserTask, error)
}

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	order []string
}

func NewTaskRepository() TaskRepository {
	return &taskRepository{
		tasks: make(map[string]*Task),
	}
}

func (r *taskRepository) Create(_ context.Context, task *Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *task
	r.tasks[task.ID] = &t
	r.order = append(r.order, task.ID)
	return nil
}

func (r *taskRepository) FindByID(_ context.Context, id string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *taskRepository) List(_ context.Context) ([]*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*Task, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.tasks[id]
		tasks = append(tasks, &cp)
	}
	return tasks, nil
}

type userTaskRepository struct {
	mu        sync.RWMutex
	userTasks map[string]*UserTask
	order     []string
}

func NewUserTaskRepository() UserTaskRepository {
	return &userTaskRepository{
		userTasks: make(map[string]*UserTask),
	}
}

func (r *userTaskRepository) Create(_ context.Context, userTask *UserTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ut := *userTask
	r.userTasks[userTask.ID] = &ut
	r.order = append(r.order, userTask.ID)
	return nil
}

func (r *userTaskRepository) FindByTaskAndUser(_ context.Context, taskID, userID string) (*UserTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		ut := r.userTasks[id]
		if ut.TaskID == taskID && ut.UserID == userID {
			cp := *ut
			return &cp, nil
		}
	}
	return nil, ErrUserTaskNotFound
}

func (r *userTaskRepository) Update(_ context.Context, userTask *UserTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.userTasks[userTask.ID]; !ok {
		return ErrUserTaskNotFound
	}
	ut := *userTask
	r.userTasks[userTask.ID] = &ut
	return nil
}

func (r *userTaskRepository) ListByUser(_ context.Context, userID string) ([]*UserTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var userTasks []*UserTask
	for _, id := range r.order {
		if r.userTasks[id].UserID == userID {
			cp := *r.userTasks[id]
			userTasks = append(userTasks, &cp)
		}
	}
	return userTasks, nil
}
