// Package resource implements the Resource repository using PostgreSQL.
package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/knowledge-base/internal/adapter/postgres"
	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// Repo provides resource persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New creates a new resource repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

const resourceColumns = `id, topic_id, url, description, type, created_at, updated_at, deleted_at`

const createResourceSQL = `
INSERT INTO resources (id, topic_id, url, description, type, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const getResourceSQL = `
SELECT ` + resourceColumns + `
FROM resources
WHERE id = $1 AND deleted_at IS NULL`

const listByTopicSQL = `
SELECT ` + resourceColumns + `
FROM resources
WHERE topic_id = $1 AND deleted_at IS NULL
ORDER BY created_at, id`

// Create inserts a new resource.
func (r *Repo) Create(ctx context.Context, res *domain.Resource) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createResourceSQL,
		res.ID, res.TopicID, res.URL, res.Description, string(res.Type), res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "resource", res.ID)
	}

	return nil
}

// Update overwrites the mutable fields of a live resource.
// Returns domain.ErrNotFound if the resource is missing or soft-deleted.
func (r *Repo) Update(ctx context.Context, res *domain.Resource) error {
	query := postgres.Builder().
		Update("resources").
		Set("url", res.URL).
		Set("description", res.Description).
		Set("type", string(res.Type)).
		Set("updated_at", res.UpdatedAt).
		Where(squirrel.Eq{"id": res.ID, "deleted_at": nil})

	affected, err := r.exec(ctx, query)
	if err != nil {
		return postgres.MapError(err, "resource", res.ID)
	}
	if affected == 0 {
		return fmt.Errorf("resource %s: %w", res.ID, domain.ErrNotFound)
	}

	return nil
}

// Get returns a live resource by id.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	res, err := scanResource(q.QueryRow(ctx, getResourceSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "resource", id)
	}

	return &res, nil
}

// SoftDelete marks a live resource deleted.
// Returns domain.ErrNotFound if the resource is missing or already deleted.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := r.now()
	query := postgres.Builder().
		Update("resources").
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "deleted_at": nil})

	affected, err := r.exec(ctx, query)
	if err != nil {
		return postgres.MapError(err, "resource", id)
	}
	if affected == 0 {
		return fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByTopic soft-deletes every live resource of topicID and returns how many were affected.
func (r *Repo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	now := r.now()
	query := postgres.Builder().
		Update("resources").
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"topic_id": topicID, "deleted_at": nil})

	affected, err := r.exec(ctx, query)
	if err != nil {
		return 0, postgres.MapError(err, "topic", topicID)
	}

	return int(affected), nil
}

// ListByTopic returns the live resources of topicID ordered by creation time.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByTopicSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("list resources of %s: %w", topicID, err)
	}
	defer rows.Close()

	result := []domain.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Repo) exec(ctx context.Context, query squirrel.UpdateBuilder) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func scanResource(row pgx.Row) (domain.Resource, error) {
	var (
		res       domain.Resource
		resType   string
		deletedAt *time.Time
	)

	err := row.Scan(&res.ID, &res.TopicID, &res.URL, &res.Description, &resType,
		&res.CreatedAt, &res.UpdatedAt, &deletedAt)
	if err != nil {
		return domain.Resource{}, err
	}

	res.Type = domain.ResourceType(resType)
	res.CreatedAt = res.CreatedAt.UTC()
	res.UpdatedAt = res.UpdatedAt.UTC()
	if deletedAt != nil {
		utc := deletedAt.UTC()
		res.DeletedAt = &utc
	}
	return res, nil
}
