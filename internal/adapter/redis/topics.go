package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// VersionRepo stores topic versions as per-topic threads.
type VersionRepo struct {
	c *Client
}

// NewVersionRepo creates a new version log repository.
func NewVersionRepo(c *Client) *VersionRepo {
	return &VersionRepo{c: c}
}

// HeadRepo stores topic heads and the child index.
type HeadRepo struct {
	c *Client
}

// NewHeadRepo creates a new head index repository.
func NewHeadRepo(c *Client) *HeadRepo {
	return &HeadRepo{c: c}
}

// Append adds v to its topic thread. The thread is watched, so a concurrent
// append of the same version makes one of the writers fail with domain.ErrConflict.
func (r *VersionRepo) Append(ctx context.Context, v *domain.TopicVersion) error {
	thread := r.c.threadKey(v.TopicID)
	member := strconv.Itoa(v.Version)

	err := r.c.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		_, err := tx.ZScore(ctx, thread, member).Result()
		if err == nil {
			return fmt.Errorf("topic %s version %d: %w", v.TopicID, v.Version, domain.ErrConflict)
		}
		if !errors.Is(err, goredis.Nil) {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, r.c.versionKey(v.TopicID, v.Version), versionToHash(v))
			pipe.ZAdd(ctx, thread, goredis.Z{Score: float64(v.Version), Member: member})
			pipe.SAdd(ctx, r.c.topicsKey(), v.TopicID.String())
			return nil
		})
		return err
	}, thread)

	if errors.Is(err, goredis.TxFailedErr) {
		return fmt.Errorf("topic %s version %d: %w", v.TopicID, v.Version, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("append topic version: %w", err)
	}
	return nil
}

// GetByTopicAndVersion returns one version or domain.ErrNotFound.
func (r *VersionRepo) GetByTopicAndVersion(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error) {
	h, err := r.c.rdb.HGetAll(ctx, r.c.versionKey(topicID, version)).Result()
	if err != nil {
		return nil, fmt.Errorf("read topic version: %w", err)
	}
	if len(h) == 0 {
		return nil, fmt.Errorf("topic_version %s: %w", topicID, domain.ErrNotFound)
	}

	v, err := hashToVersion(h)
	if err != nil {
		return nil, fmt.Errorf("decode topic version: %w", err)
	}
	return &v, nil
}

// ListAll returns every version of every topic.
func (r *VersionRepo) ListAll(ctx context.Context) ([]domain.TopicVersion, error) {
	ids, err := r.c.rdb.SMembers(ctx, r.c.topicsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	sort.Strings(ids)

	result := []domain.TopicVersion{}
	for _, raw := range ids {
		topicID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid topic id %q: %w", raw, err)
		}
		versions, err := r.ListByTopic(ctx, topicID)
		if err != nil {
			return nil, err
		}
		result = append(result, versions...)
	}
	return result, nil
}

// ListByTopic returns the versions of one topic ascending by version.
func (r *VersionRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error) {
	members, err := r.c.rdb.ZRange(ctx, r.c.threadKey(topicID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read thread of %s: %w", topicID, err)
	}

	cmds := make([]*goredis.MapStringStringCmd, len(members))
	_, err = r.c.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, m := range members {
			n, err := strconv.Atoi(m)
			if err != nil {
				return fmt.Errorf("invalid thread member %q: %w", m, err)
			}
			cmds[i] = pipe.HGetAll(ctx, r.c.versionKey(topicID, n))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read versions of %s: %w", topicID, err)
	}

	result := make([]domain.TopicVersion, 0, len(cmds))
	for _, cmd := range cmds {
		v, err := hashToVersion(cmd.Val())
		if err != nil {
			return nil, fmt.Errorf("decode topic version: %w", err)
		}
		result = append(result, v)
	}
	return result, nil
}

// parentOf returns the parent named by one stored version.
func (c *Client) parentOf(ctx context.Context, topicID uuid.UUID, version int) (*uuid.UUID, error) {
	raw, err := c.rdb.HGet(ctx, c.versionKey(topicID, version), "parent_topic_id").Result()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("topic_version %s/%d: %w", topicID, version, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return parseOptionalID(raw)
}

func (c *Client) getHead(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error) {
	h, err := c.rdb.HGetAll(ctx, c.headKey(topicID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read topic head: %w", err)
	}
	if len(h) == 0 {
		return nil, fmt.Errorf("topic_head %s: %w", topicID, domain.ErrNotFound)
	}

	head, err := hashToHead(h)
	if err != nil {
		return nil, fmt.Errorf("decode topic head: %w", err)
	}
	return &head, nil
}

// Upsert replaces the head of head.TopicID and moves the topic in the child
// index to the parent named by its new latest version.
func (r *HeadRepo) Upsert(ctx context.Context, head domain.TopicHead) error {
	newParent, err := r.c.parentOf(ctx, head.TopicID, head.LatestVersion)
	if err != nil {
		return err
	}

	var oldParent *uuid.UUID
	prev, err := r.c.getHead(ctx, head.TopicID)
	switch {
	case err == nil:
		if oldParent, err = r.c.parentOf(ctx, prev.TopicID, prev.LatestVersion); err != nil {
			return err
		}
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	child := head.TopicID.String()
	_, err = r.c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		if oldParent != nil {
			pipe.SRem(ctx, r.c.childrenKey(*oldParent), child)
		}
		if head.DeletedAt == nil && newParent != nil {
			pipe.SAdd(ctx, r.c.childrenKey(*newParent), child)
		}
		pipe.HSet(ctx, r.c.headKey(head.TopicID), headToHash(head))
		return nil
	})
	if err != nil {
		return fmt.Errorf("write topic head: %w", err)
	}
	return nil
}

// Get returns the head of topicID, alive or not, or domain.ErrNotFound.
func (r *HeadRepo) Get(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error) {
	return r.c.getHead(ctx, topicID)
}

// ListAll returns every head including soft-deleted ones.
func (r *HeadRepo) ListAll(ctx context.Context) ([]domain.TopicHead, error) {
	ids, err := r.c.rdb.SMembers(ctx, r.c.topicsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	sort.Strings(ids)

	result := []domain.TopicHead{}
	for _, raw := range ids {
		topicID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid topic id %q: %w", raw, err)
		}
		head, err := r.c.getHead(ctx, topicID)
		if errors.Is(err, domain.ErrNotFound) {
			// version appended, head not yet written
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, *head)
	}
	return result, nil
}

// FindChildren returns the live heads whose latest version names topicID as
// parent, ordered by creation time.
func (r *HeadRepo) FindChildren(ctx context.Context, topicID uuid.UUID) ([]domain.TopicHead, error) {
	ids, err := r.c.rdb.SMembers(ctx, r.c.childrenKey(topicID)).Result()
	if err != nil {
		return nil, fmt.Errorf("find children of %s: %w", topicID, err)
	}

	type child struct {
		head    domain.TopicHead
		created string
	}
	children := make([]child, 0, len(ids))
	for _, raw := range ids {
		childID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid child id %q: %w", raw, err)
		}
		head, err := r.c.getHead(ctx, childID)
		if err != nil {
			return nil, fmt.Errorf("child %s: %w", childID, err)
		}
		if !head.IsAlive() {
			continue
		}
		h, err := r.c.rdb.HMGet(ctx, r.c.versionKey(childID, head.LatestVersion), "parent_topic_id", "created_at").Result()
		if err != nil {
			return nil, fmt.Errorf("child %s: %w", childID, err)
		}
		parent, _ := h[0].(string)
		if parent != topicID.String() {
			continue
		}
		created, _ := h[1].(string)
		children = append(children, child{head: *head, created: created})
	}

	// RFC3339Nano trims trailing zeros, so compare parsed times.
	sort.Slice(children, func(i, j int) bool {
		a, _ := parseOptionalTime(children[i].created)
		b, _ := parseOptionalTime(children[j].created)
		if a != nil && b != nil && !a.Equal(*b) {
			return a.Before(*b)
		}
		return children[i].head.TopicID.String() < children[j].head.TopicID.String()
	})

	result := make([]domain.TopicHead, len(children))
	for i, c := range children {
		result[i] = c.head
	}
	return result, nil
}
