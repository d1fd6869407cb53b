package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// ResourceRepo stores resources as hashes indexed per topic.
type ResourceRepo struct {
	c   *Client
	now func() time.Time
}

// NewResourceRepo creates a new resource repository.
func NewResourceRepo(c *Client) *ResourceRepo {
	return &ResourceRepo{c: c, now: func() time.Time { return time.Now().UTC() }}
}

// Create stores a new resource. The topic must have a head.
func (r *ResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	known, err := r.c.rdb.Exists(ctx, r.c.headKey(res.TopicID)).Result()
	if err != nil {
		return fmt.Errorf("check topic: %w", err)
	}
	if known == 0 {
		return fmt.Errorf("topic %s: %w", res.TopicID, domain.ErrNotFound)
	}

	created, err := r.c.rdb.HSetNX(ctx, r.c.resourceKey(res.ID), "id", res.ID.String()).Result()
	if err != nil {
		return fmt.Errorf("reserve resource: %w", err)
	}
	if !created {
		return fmt.Errorf("resource %s: %w", res.ID, domain.ErrAlreadyExists)
	}

	_, err = r.c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, r.c.resourceKey(res.ID), resourceToHash(res))
		pipe.SAdd(ctx, r.c.topicResourcesKey(res.TopicID), res.ID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("write resource: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a live resource.
func (r *ResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	if _, err := r.getLive(ctx, res.ID); err != nil {
		return err
	}

	err := r.c.rdb.HSet(ctx, r.c.resourceKey(res.ID),
		"url", res.URL,
		"description", res.Description,
		"type", string(res.Type),
		"updated_at", formatTime(res.UpdatedAt),
	).Err()
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	return nil
}

// Get returns a live resource by id.
func (r *ResourceRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	res, err := r.getLive(ctx, id)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SoftDelete marks a live resource deleted.
func (r *ResourceRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.getLive(ctx, id); err != nil {
		return err
	}
	return r.markDeleted(ctx, id, r.now())
}

// DeleteByTopic soft-deletes every live resource of topicID and returns how many were affected.
func (r *ResourceRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	all, err := r.listTopic(ctx, topicID)
	if err != nil {
		return 0, err
	}

	now := r.now()
	count := 0
	for _, res := range all {
		if res.IsDeleted() {
			continue
		}
		if err := r.markDeleted(ctx, res.ID, now); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ListByTopic returns the live resources of topicID ordered by creation time.
func (r *ResourceRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error) {
	all, err := r.listTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	result := []domain.Resource{}
	for _, res := range all {
		if !res.IsDeleted() {
			result = append(result, res)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (r *ResourceRepo) markDeleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := r.c.rdb.HSet(ctx, r.c.resourceKey(id),
		"deleted_at", formatTime(at),
		"updated_at", formatTime(at),
	).Err()
	if err != nil {
		return fmt.Errorf("delete resource %s: %w", id, err)
	}
	return nil
}

func (r *ResourceRepo) getLive(ctx context.Context, id uuid.UUID) (domain.Resource, error) {
	h, err := r.c.rdb.HGetAll(ctx, r.c.resourceKey(id)).Result()
	if err != nil {
		return domain.Resource{}, fmt.Errorf("read resource: %w", err)
	}
	if len(h) == 0 {
		return domain.Resource{}, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}

	res, err := hashToResource(h)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("decode resource: %w", err)
	}
	if res.IsDeleted() {
		return domain.Resource{}, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	return res, nil
}

func (r *ResourceRepo) listTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error) {
	ids, err := r.c.rdb.SMembers(ctx, r.c.topicResourcesKey(topicID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list resources of %s: %w", topicID, err)
	}

	result := make([]domain.Resource, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid resource id %q: %w", raw, err)
		}
		h, err := r.c.rdb.HGetAll(ctx, r.c.resourceKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("read resource: %w", err)
		}
		res, err := hashToResource(h)
		if err != nil {
			return nil, fmt.Errorf("decode resource %s: %w", id, err)
		}
		result = append(result, res)
	}
	return result, nil
}
