package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taskhive/backend/domain"
)

// TaskRepository is an in-memory implementation of repository.TaskRepository.
// It exists so the use case and handler layers can be exercised without a
// live database. Ids are monotonically increasing and never reused.
type TaskRepository struct {
	// Now supplies timestamps and may be swapped out in tests.
	Now func() time.Time

	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]domain.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		Now:   time.Now,
		tasks: make(map[int64]domain.Task),
	}
}

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.Now()

	task.ID = r.nextID
	task.CreatedAt = now
	task.UpdatedAt = now
	task.Completed = false

	r.tasks[task.ID] = *task
	out := *task
	return &out, nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]domain.Task, 0)
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			tasks = append(tasks, t)
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (r *TaskRepository) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	out := task
	return &out, nil
}

func (r *TaskRepository) Update(_ context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}

	task.OwnerID = stored.OwnerID
	task.CreatedAt = stored.CreatedAt
	task.UpdatedAt = r.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}
