package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the given role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:        uuid.New(),
		Name:      "Test User " + suffix,
		Email:     "testuser-" + suffix + "@example.com",
		Role:      role,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, string(user.Role), user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedTopic writes version 1 of a new topic together with its live head.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, name string, parent *uuid.UUID) domain.TopicVersion {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	v := domain.TopicVersion{
		ID:            uuid.New(),
		TopicID:       uuid.New(),
		Version:       1,
		Name:          name,
		Content:       "content of " + name,
		ParentTopicID: parent,
		CreatedAt:     now,
		UpdatedAt:     now,
		Action:        domain.TopicActionCreate,
		PerformedBy:   uuid.New(),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO topic_versions (id, topic_id, version, name, content, parent_topic_id, created_at, updated_at, action, performed_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.TopicID, v.Version, v.Name, v.Content, v.ParentTopicID, v.CreatedAt, v.UpdatedAt, string(v.Action), v.PerformedBy,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTopic insert version: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO topic_heads (topic_id, latest_version) VALUES ($1, $2)`,
		v.TopicID, v.Version,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTopic insert head: %v", err)
	}

	return v
}
