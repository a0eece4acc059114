package task

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

const maxTitleLength = 200

// UpdateFields carries the sparse field set of a partial update. A nil
// pointer means the field was not provided.
type UpdateFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (f UpdateFields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Completed == nil
}

type UseCase struct {
	tasks  repository.TaskRepository
	cache  usecase.ListCache
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, cache usecase.ListCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		cache:  cache,
		logger: logger,
	}
}

func (uc *UseCase) Create(ctx context.Context, ownerID, title, description string) (*domain.Task, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.dropCache(ctx, ownerID)
	return created, nil
}

func (uc *UseCase) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	if uc.cache != nil {
		if tasks, ok := uc.cache.GetList(ctx, ownerID); ok {
			return tasks, nil
		}
	}

	tasks, err := uc.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetList(ctx, ownerID, tasks); err != nil {
			uc.logger.Warn("task list cache write failed", zap.Error(err))
		}
	}
	return tasks, nil
}

// Update applies a sparse field set to an owned task. An empty field set
// is an explicit no-op: the task is returned as-is and updated_at keeps
// its value. Re-sending a field equal to the current value still counts
// as a write.
func (uc *UseCase) Update(ctx context.Context, ownerID string, id int64, fields UpdateFields) (*domain.Task, error) {
	task, err := uc.authorize(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if fields.Empty() {
		return task, nil
	}

	if fields.Title != nil {
		title, err := validateTitle(*fields.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}
	if fields.Completed != nil {
		task.Completed = *fields.Completed
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	uc.dropCache(ctx, ownerID)
	return task, nil
}

func (uc *UseCase) Delete(ctx context.Context, ownerID string, id int64) error {
	if _, err := uc.authorize(ctx, id, ownerID); err != nil {
		return err
	}

	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}

	uc.dropCache(ctx, ownerID)
	return nil
}

// SetCompleted flips the completion flag unconditionally. Completing an
// already-completed task succeeds and still refreshes updated_at.
func (uc *UseCase) SetCompleted(ctx context.Context, ownerID string, id int64, completed bool) (*domain.Task, error) {
	task, err := uc.authorize(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	task.Completed = completed
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	uc.dropCache(ctx, ownerID)
	return task, nil
}

// authorize fetches a task by id and checks ownership. A missing task
// and a task owned by another identity return the same not-found error;
// a distinct status would let callers enumerate valid ids.
func (uc *UseCase) authorize(ctx context.Context, id int64, ownerID string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	if !task.OwnedBy(ownerID) {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (uc *UseCase) dropCache(ctx context.Context, ownerID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateList(ctx, ownerID); err != nil {
		uc.logger.Warn("task list cache invalidation failed", zap.String("owner", ownerID), zap.Error(err))
	}
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", domain.NewValidationError("title is required", "title", "required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", domain.NewValidationError("title must be 1-200 characters", "title", "length")
	}
	return title, nil
}
