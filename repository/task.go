package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// TaskRepository is the persistence boundary for tasks. GetByID is a raw
// lookup with no owner filter; ownership is enforced by the use case
// layer so that "missing" and "not owned" collapse into one signal there.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}
