// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/knowledge-base/internal/adapter/postgres"
	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getUserSQL = `SELECT id, name, email, role, created_at FROM users WHERE id = $1`

const listUsersSQL = `SELECT id, name, email, role, created_at FROM users ORDER BY created_at, id`

const upsertUserSQL = `
INSERT INTO users (id, name, email, role, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name  = EXCLUDED.name,
    email = EXCLUDED.email,
    role  = EXCLUDED.role`

// Get returns a user by primary key.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getUserSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return &u, nil
}

// Upsert creates the user or replaces its name, email and role.
// Returns domain.ErrAlreadyExists if another user owns the email.
func (r *Repo) Upsert(ctx context.Context, u *domain.User) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, upsertUserSQL, u.ID, u.Name, u.Email, string(u.Role), u.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "user", u.ID)
	}

	return nil
}

// List returns all users ordered by creation time.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u    domain.User
		role string
	)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}

	u.Role = domain.UserRole(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
