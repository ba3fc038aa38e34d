package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/ProjectMate/go-project-backend/internal/errs"
	"github.com/ProjectMate/go-project-backend/internal/projects/domain"
)

const (
	projectKeyPrefix = "project:"     // Project document: project:{id}
	projectIDSetKey  = "projects:ids" // Set of all project ids
)

// RedisStore is the key-value backend behind the Store interface, for
// deployments where loose files are not an option. Documents are stored
// as JSON strings with an id index set for listing.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) List(ctx context.Context) ([]domain.Project, error) {
	ids, err := s.client.SMembers(ctx, projectIDSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: list projects: %v", errs.ErrStorage, err)
	}

	items := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, s.key(id)).Result()
		if err != nil {
			continue
		}
		var p domain.Project
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			continue
		}
		items = append(items, p)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: project %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get project %s: %v", errs.ErrStorage, id, err)
	}
	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("%w: project %s", errs.ErrNotFound, id)
	}
	return &p, nil
}

func (s *RedisStore) Create(ctx context.Context, p *domain.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: marshal project %s: %v", errs.ErrStorage, p.ID, err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(p.ID), data, 0)
	pipe.SAdd(ctx, projectIDSetKey, p.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: save project %s: %v", errs.ErrStorage, p.ID, err)
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(patch)
	p.UpdatedAt = domain.Now()

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal project %s: %v", errs.ErrStorage, id, err)
	}
	if err := s.client.Set(ctx, s.key(id), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("%w: save project %s: %v", errs.ErrStorage, id, err)
	}
	return p, nil
}

func (s *RedisStore) key(id string) string {
	return projectKeyPrefix + id
}
