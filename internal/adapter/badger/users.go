package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	dgbadger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// UserRepo stores users with a case-insensitive unique email index.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new user repository.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Get returns a user by id.
func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var rec userRecord
	err := r.db.view(ctx, func(txn *dgbadger.Txn) error {
		return getJSON(txn, userKey(id), &rec)
	})
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}

	u := rec.toDomain()
	return &u, nil
}

// Upsert creates the user or replaces its name, email and role.
// Returns domain.ErrAlreadyExists if another user owns the email.
func (r *UserRepo) Upsert(ctx context.Context, u *domain.User) error {
	email := strings.ToLower(u.Email)
	return r.db.update(ctx, func(txn *dgbadger.Txn) error {
		var owner userRecord
		err := getJSON(txn, userEmailKey(email), &owner)
		switch {
		case err == nil && owner.ID != u.ID:
			return fmt.Errorf("user %s: email %s: %w", u.ID, u.Email, domain.ErrAlreadyExists)
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}

		rec := userRecord{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), CreatedAt: u.CreatedAt}

		var prev userRecord
		err = getJSON(txn, userKey(u.ID), &prev)
		switch {
		case err == nil:
			rec.CreatedAt = prev.CreatedAt
			if prevEmail := strings.ToLower(prev.Email); prevEmail != email {
				if err := txn.Delete(userEmailKey(prevEmail)); err != nil {
					return err
				}
			}
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		if err := setJSON(txn, userEmailKey(email), userRecord{ID: u.ID}); err != nil {
			return err
		}
		return setJSON(txn, userKey(u.ID), rec)
	})
}

// List returns all users ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	err := r.db.view(ctx, func(txn *dgbadger.Txn) error {
		var err error
		records, err = scanJSON[userRecord](txn, []byte(prefixUser))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	result := make([]domain.User, len(records))
	for i, rec := range records {
		result[i] = rec.toDomain()
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}
