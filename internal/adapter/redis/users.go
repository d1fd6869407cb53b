package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// UserRepo stores users with a unique email index claimed by SETNX.
type UserRepo struct {
	c *Client
}

// NewUserRepo creates a new user repository.
func NewUserRepo(c *Client) *UserRepo {
	return &UserRepo{c: c}
}

// Get returns a user by id.
func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	h, err := r.c.rdb.HGetAll(ctx, r.c.userKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if len(h) == 0 {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	u, err := hashToUser(h)
	if err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

// Upsert creates the user or replaces its name, email and role.
// Returns domain.ErrAlreadyExists if another user owns the email.
func (r *UserRepo) Upsert(ctx context.Context, u *domain.User) error {
	emailKey := r.c.userEmailKey(u.Email)

	claimed, err := r.c.rdb.SetNX(ctx, emailKey, u.ID.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("claim email: %w", err)
	}
	if !claimed {
		owner, err := r.c.rdb.Get(ctx, emailKey).Result()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return fmt.Errorf("read email owner: %w", err)
		}
		if owner != u.ID.String() {
			return fmt.Errorf("user %s: email %s: %w", u.ID, u.Email, domain.ErrAlreadyExists)
		}
	}

	rec := *u
	prev, err := r.Get(ctx, u.ID)
	switch {
	case err == nil:
		rec.CreatedAt = prev.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	_, err = r.c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		if prev != nil && !strings.EqualFold(prev.Email, u.Email) {
			pipe.Del(ctx, r.c.userEmailKey(prev.Email))
		}
		pipe.HSet(ctx, r.c.userKey(u.ID), userToHash(&rec))
		pipe.SAdd(ctx, r.c.usersKey(), u.ID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

// List returns all users ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	ids, err := r.c.rdb.SMembers(ctx, r.c.usersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	result := make([]domain.User, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", raw, err)
		}
		u, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}
