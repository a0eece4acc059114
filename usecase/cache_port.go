package usecase

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// ListCache abstracts the per-owner list cache so use cases stay
// storage-agnostic. Implementations must scope entries by owner.
type ListCache interface {
	GetList(ctx context.Context, ownerID string) ([]domain.Task, bool)
	SetList(ctx context.Context, ownerID string, tasks []domain.Task) error
	InvalidateList(ctx context.Context, ownerID string) error
}
