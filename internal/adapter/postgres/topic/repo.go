// Package topic implements the topic version log and head index using PostgreSQL.
package topic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/knowledge-base/internal/adapter/postgres"
	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// VersionRepo is the append-only topic_versions log.
type VersionRepo struct {
	pool *pgxpool.Pool
}

// NewVersionRepo creates a new version log repository.
func NewVersionRepo(pool *pgxpool.Pool) *VersionRepo {
	return &VersionRepo{pool: pool}
}

// HeadRepo maintains one topic_heads row per topic.
type HeadRepo struct {
	pool *pgxpool.Pool
}

// NewHeadRepo creates a new head index repository.
func NewHeadRepo(pool *pgxpool.Pool) *HeadRepo {
	return &HeadRepo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const versionColumns = `id, topic_id, version, name, content, parent_topic_id, created_at, updated_at, action, performed_by`

const appendVersionSQL = `
INSERT INTO topic_versions (` + versionColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const getVersionSQL = `
SELECT ` + versionColumns + `
FROM topic_versions
WHERE topic_id = $1 AND version = $2`

const listVersionsSQL = `
SELECT ` + versionColumns + `
FROM topic_versions
ORDER BY topic_id, version`

const listVersionsByTopicSQL = `
SELECT ` + versionColumns + `
FROM topic_versions
WHERE topic_id = $1
ORDER BY version`

const upsertHeadSQL = `
INSERT INTO topic_heads (topic_id, latest_version, deleted_at)
VALUES ($1, $2, $3)
ON CONFLICT (topic_id) DO UPDATE
SET latest_version = EXCLUDED.latest_version,
    deleted_at     = EXCLUDED.deleted_at`

const getHeadSQL = `SELECT topic_id, latest_version, deleted_at FROM topic_heads WHERE topic_id = $1`

const listHeadsSQL = `SELECT topic_id, latest_version, deleted_at FROM topic_heads ORDER BY topic_id`

// ---------------------------------------------------------------------------
// Version log
// ---------------------------------------------------------------------------

// Append inserts v. A concurrent writer that already took (topic_id, version)
// makes this return domain.ErrConflict.
func (r *VersionRepo) Append(ctx context.Context, v *domain.TopicVersion) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, appendVersionSQL,
		v.ID, v.TopicID, v.Version, v.Name, v.Content, v.ParentTopicID,
		v.CreatedAt, v.UpdatedAt, string(v.Action), v.PerformedBy,
	)
	if err != nil {
		mapped := postgres.MapError(err, "topic_version", v.TopicID)
		if errors.Is(mapped, domain.ErrAlreadyExists) {
			return fmt.Errorf("topic %s version %d: %w", v.TopicID, v.Version, domain.ErrConflict)
		}
		return mapped
	}

	return nil
}

// GetByTopicAndVersion returns one version or domain.ErrNotFound.
func (r *VersionRepo) GetByTopicAndVersion(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	v, err := scanVersion(q.QueryRow(ctx, getVersionSQL, topicID, version))
	if err != nil {
		return nil, postgres.MapError(err, "topic_version", topicID)
	}

	return &v, nil
}

// ListAll returns every version of every topic.
func (r *VersionRepo) ListAll(ctx context.Context) ([]domain.TopicVersion, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listVersionsSQL)
	if err != nil {
		return nil, fmt.Errorf("list topic versions: %w", err)
	}
	defer rows.Close()

	return scanVersions(rows)
}

// ListByTopic returns the versions of one topic ascending by version.
// Returns an empty slice (not nil) when the topic is unknown.
func (r *VersionRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listVersionsByTopicSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("list versions of %s: %w", topicID, err)
	}
	defer rows.Close()

	return scanVersions(rows)
}

// ---------------------------------------------------------------------------
// Head index
// ---------------------------------------------------------------------------

// Upsert creates or replaces the head of head.TopicID.
func (r *HeadRepo) Upsert(ctx context.Context, head domain.TopicHead) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, upsertHeadSQL, head.TopicID, head.LatestVersion, head.DeletedAt); err != nil {
		return postgres.MapError(err, "topic_head", head.TopicID)
	}

	return nil
}

// Get returns the head of topicID, alive or not, or domain.ErrNotFound.
func (r *HeadRepo) Get(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	h, err := scanHead(q.QueryRow(ctx, getHeadSQL, topicID))
	if err != nil {
		return nil, postgres.MapError(err, "topic_head", topicID)
	}

	return &h, nil
}

// ListAll returns every head including soft-deleted ones.
func (r *HeadRepo) ListAll(ctx context.Context) ([]domain.TopicHead, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listHeadsSQL)
	if err != nil {
		return nil, fmt.Errorf("list topic heads: %w", err)
	}
	defer rows.Close()

	return scanHeads(rows)
}

// FindChildren returns the live heads whose latest version names topicID as parent.
func (r *HeadRepo) FindChildren(ctx context.Context, topicID uuid.UUID) ([]domain.TopicHead, error) {
	query := postgres.Builder().
		Select("h.topic_id", "h.latest_version", "h.deleted_at").
		From("topic_heads h").
		Join("topic_versions v ON v.topic_id = h.topic_id AND v.version = h.latest_version").
		Where(squirrel.Eq{"v.parent_topic_id": topicID, "h.deleted_at": nil}).
		OrderBy("v.created_at", "h.topic_id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find children query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find children of %s: %w", topicID, err)
	}
	defer rows.Close()

	return scanHeads(rows)
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanVersion(row pgx.Row) (domain.TopicVersion, error) {
	var (
		v      domain.TopicVersion
		action string
	)

	err := row.Scan(
		&v.ID, &v.TopicID, &v.Version, &v.Name, &v.Content, &v.ParentTopicID,
		&v.CreatedAt, &v.UpdatedAt, &action, &v.PerformedBy,
	)
	if err != nil {
		return domain.TopicVersion{}, err
	}

	v.Action = domain.TopicAction(action)
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}

func scanVersions(rows pgx.Rows) ([]domain.TopicVersion, error) {
	result := []domain.TopicVersion{}
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan topic version: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanHead(row pgx.Row) (domain.TopicHead, error) {
	var (
		h         domain.TopicHead
		deletedAt *time.Time
	)

	if err := row.Scan(&h.TopicID, &h.LatestVersion, &deletedAt); err != nil {
		return domain.TopicHead{}, err
	}

	if deletedAt != nil {
		utc := deletedAt.UTC()
		h.DeletedAt = &utc
	}
	return h, nil
}

func scanHeads(rows pgx.Rows) ([]domain.TopicHead, error) {
	result := []domain.TopicHead{}
	for rows.Next() {
		h, err := scanHead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan topic head: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
