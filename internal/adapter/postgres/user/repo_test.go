package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/knowledge-base/internal/adapter/postgres/user"
	"github.com/heartmarshall/knowledge-base/internal/domain"
)

func TestRepo_UpsertAndGet(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)
	ctx := context.Background()

	u := &domain.User{
		ID:        uuid.New(),
		Name:      "Ada",
		Email:     uuid.NewString() + "@example.com",
		Role:      domain.UserRoleEditor,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := repo.Upsert(ctx, u); err != nil {
		t.Fatalf("Upsert: unexpected error: %v", err)
	}

	u.Role = domain.UserRoleAdmin
	if err := repo.Upsert(ctx, u); err != nil {
		t.Fatalf("second Upsert: unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.Role != domain.UserRoleAdmin {
		t.Errorf("Role: got %s, want ADMIN", got.Role)
	}
	if !got.CreatedAt.Equal(u.CreatedAt) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, u.CreatedAt)
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	repo := user.New(testhelper.SetupTestDB(t))

	if _, err := repo.Get(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Upsert_DuplicateEmail(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)

	existing := testhelper.SeedUser(t, pool, domain.UserRoleViewer)
	dup := &domain.User{
		ID:        uuid.New(),
		Name:      "Copycat",
		Email:     existing.Email,
		Role:      domain.UserRoleViewer,
		CreatedAt: time.Now().UTC(),
	}

	if err := repo.Upsert(context.Background(), dup); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_List(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)

	seeded := testhelper.SeedUser(t, pool, domain.UserRoleAdmin)

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	found := false
	for _, u := range list {
		if u.ID == seeded.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("seeded user %s missing from List", seeded.ID)
	}
}
