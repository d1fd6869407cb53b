package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	dgbadger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// ResourceRepo stores resources and their per-topic index.
type ResourceRepo struct {
	db  *DB
	now func() time.Time
}

// NewResourceRepo creates a new resource repository.
func NewResourceRepo(db *DB) *ResourceRepo {
	return &ResourceRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create stores a new resource. The topic must have a head.
func (r *ResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	return r.db.update(ctx, func(txn *dgbadger.Txn) error {
		known, err := exists(txn, headKey(res.TopicID))
		if err != nil {
			return err
		}
		if !known {
			return fmt.Errorf("topic %s: %w", res.TopicID, domain.ErrNotFound)
		}
		taken, err := exists(txn, resourceKey(res.ID))
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("resource %s: %w", res.ID, domain.ErrAlreadyExists)
		}

		if err := setJSON(txn, resourceKey(res.ID), toResourceRecord(res)); err != nil {
			return err
		}
		return txn.Set(topicResourceKey(res.TopicID, res.ID), []byte{})
	})
}

// Update overwrites the mutable fields of a live resource.
func (r *ResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	return r.db.update(ctx, func(txn *dgbadger.Txn) error {
		current, err := getLiveResource(txn, res.ID)
		if err != nil {
			return err
		}
		current.URL = res.URL
		current.Description = res.Description
		current.Type = string(res.Type)
		current.UpdatedAt = res.UpdatedAt
		return setJSON(txn, resourceKey(res.ID), current)
	})
}

// Get returns a live resource by id.
func (r *ResourceRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	var rec resourceRecord
	err := r.db.view(ctx, func(txn *dgbadger.Txn) error {
		var err error
		rec, err = getLiveResource(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := rec.toDomain()
	return &res, nil
}

// SoftDelete marks a live resource deleted.
func (r *ResourceRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := r.now()
	return r.db.update(ctx, func(txn *dgbadger.Txn) error {
		rec, err := getLiveResource(txn, id)
		if err != nil {
			return err
		}
		rec.DeletedAt = &now
		rec.UpdatedAt = now
		return setJSON(txn, resourceKey(id), rec)
	})
}

// DeleteByTopic soft-deletes every live resource of topicID and returns how many were affected.
func (r *ResourceRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	now := r.now()
	count := 0
	err := r.db.update(ctx, func(txn *dgbadger.Txn) error {
		records, err := topicResources(txn, topicID)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if rec.DeletedAt != nil {
				continue
			}
			rec.DeletedAt = &now
			rec.UpdatedAt = now
			if err := setJSON(txn, resourceKey(rec.ID), rec); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete resources of %s: %w", topicID, err)
	}

	return count, nil
}

// ListByTopic returns the live resources of topicID ordered by creation time.
func (r *ResourceRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error) {
	var records []resourceRecord
	err := r.db.view(ctx, func(txn *dgbadger.Txn) error {
		var err error
		records, err = topicResources(txn, topicID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list resources of %s: %w", topicID, err)
	}

	result := []domain.Resource{}
	for _, rec := range records {
		if rec.DeletedAt == nil {
			result = append(result, rec.toDomain())
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

func getLiveResource(txn *dgbadger.Txn, id uuid.UUID) (resourceRecord, error) {
	var rec resourceRecord
	if err := getJSON(txn, resourceKey(id), &rec); err != nil {
		return resourceRecord{}, fmt.Errorf("resource %s: %w", id, err)
	}
	if rec.DeletedAt != nil {
		return resourceRecord{}, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	return rec, nil
}

func topicResources(txn *dgbadger.Txn, topicID uuid.UUID) ([]resourceRecord, error) {
	prefix := topicResourcePrefix(topicID)
	var records []resourceRecord
	for _, key := range scanKeys(txn, prefix) {
		id, err := idFromKey(key, prefix)
		if err != nil {
			return nil, fmt.Errorf("decode resource key %s: %w", key, err)
		}
		var rec resourceRecord
		if err := getJSON(txn, resourceKey(id), &rec); err != nil {
			return nil, fmt.Errorf("resource %s: %w", id, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
