package redis

import (
	"context"
	"encoding/json"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/taskhive/backend/domain"
)

const listKeyPrefix = "tasks:list:"

// TaskListCache keeps per-owner list results in Redis. Keys are scoped by
// owner identity, so a cache hit can never cross tenants.
type TaskListCache struct {
	client *goRedis.Client
	ttl    time.Duration
}

func NewTaskListCache(client *goRedis.Client, ttl time.Duration) *TaskListCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TaskListCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *TaskListCache) GetList(ctx context.Context, ownerID string) ([]domain.Task, bool) {
	payload, err := c.client.Get(ctx, listKeyPrefix+ownerID).Bytes()
	if err != nil {
		return nil, false
	}

	var tasks []domain.Task
	if err := json.Unmarshal(payload, &tasks); err != nil {
		return nil, false
	}

	// OwnerID is excluded from JSON; restore it from the cache key scope.
	for i := range tasks {
		tasks[i].OwnerID = ownerID
	}
	return tasks, true
}

func (c *TaskListCache) SetList(ctx context.Context, ownerID string, tasks []domain.Task) error {
	payload, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKeyPrefix+ownerID, payload, c.ttl).Err()
}

func (c *TaskListCache) InvalidateList(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, listKeyPrefix+ownerID).Err()
}
