package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	dgbadger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// VersionRepo is the append-only topic version log.
type VersionRepo struct {
	db *DB
}

// NewVersionRepo creates a new version log repository.
func NewVersionRepo(db *DB) *VersionRepo {
	return &VersionRepo{db: db}
}

// HeadRepo maintains the head of every topic and the child index.
type HeadRepo struct {
	db *DB
}

// NewHeadRepo creates a new head index repository.
func NewHeadRepo(db *DB) *HeadRepo {
	return &HeadRepo{db: db}
}

// Append stores v. Returns domain.ErrConflict if (topic, version) is taken.
func (r *VersionRepo) Append(ctx context.Context, v *domain.TopicVersion) error {
	key := versionKey(v.TopicID, v.Version)
	return r.db.update(ctx, func(txn *dgbadger.Txn) error {
		taken, err := exists(txn, key)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("topic %s version %d: %w", v.TopicID, v.Version, domain.ErrConflict)
		}
		return setJSON(txn, key, toVersionRecord(v))
	})
}

// GetByTopicAndVersion returns one version or domain.ErrNotFound.
func (r *VersionRepo) GetByTopicAndVersion(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error) {
	var rec versionRecord
	err := r.db.view(ctx, func(txn *dgbadger.Txn) error {
		return getJSON(txn, versionKey(topicID, version), &rec)
	})
	if err != nil {
		return nil, fmt.Errorf("topic_version %s: %w", topicID, err)
	}

	v := rec.toDomain()
	return &v, nil
}

// ListAll returns every version of every topic.
func (r *VersionRepo) ListAll(ctx context.Context) ([]domain.TopicVersion, error) {
	return r.list(ctx, []byte(prefixVersion))
}

// ListByTopic returns the versions of one topic ascending by version.
func (r *VersionRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error) {
	return r.list(ctx, topicVersionsPrefix(topicID))
}

func (r *VersionRepo) list(ctx context.Context, prefix []byte) ([]domain.TopicVersion, error) {
	var records []versionRecord
	err := r.db.view(ctx, func(txn *dgbadger.Txn) error {
		var err error
		records, err = scanJSON[versionRecord](txn, prefix)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list topic versions: %w", err)
	}

	result := make([]domain.TopicVersion, len(records))
	for i, rec := range records {
		result[i] = rec.toDomain()
	}
	return result, nil
}

// Upsert replaces the head of head.TopicID and moves the topic in the child
// index to the parent named by its new latest version. The version must
// already be stored, in the same transaction or before it.
func (r *HeadRepo) Upsert(ctx context.Context, head domain.TopicHead) error {
	return r.db.update(ctx, func(txn *dgbadger.Txn) error {
		var latest versionRecord
		if err := getJSON(txn, versionKey(head.TopicID, head.LatestVersion), &latest); err != nil {
			return fmt.Errorf("topic_head %s: version %d: %w", head.TopicID, head.LatestVersion, err)
		}

		var prev headRecord
		err := getJSON(txn, headKey(head.TopicID), &prev)
		switch {
		case err == nil:
			var prevVersion versionRecord
			if err := getJSON(txn, versionKey(prev.TopicID, prev.LatestVersion), &prevVersion); err != nil {
				return fmt.Errorf("topic_head %s: previous version: %w", head.TopicID, err)
			}
			if prevVersion.ParentTopicID != nil {
				if err := txn.Delete(childKey(*prevVersion.ParentTopicID, head.TopicID)); err != nil {
					return err
				}
			}
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		if head.DeletedAt == nil && latest.ParentTopicID != nil {
			if err := txn.Set(childKey(*latest.ParentTopicID, head.TopicID), []byte{}); err != nil {
				return err
			}
		}

		return setJSON(txn, headKey(head.TopicID), headRecord{
			TopicID:       head.TopicID,
			LatestVersion: head.LatestVersion,
			DeletedAt:     head.DeletedAt,
		})
	})
}

// Get returns the head of topicID, alive or not, or domain.ErrNotFound.
func (r *HeadRepo) Get(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error) {
	var rec headRecord
	err := r.db.view(ctx, func(txn *dgbadger.Txn) error {
		return getJSON(txn, headKey(topicID), &rec)
	})
	if err != nil {
		return nil, fmt.Errorf("topic_head %s: %w", topicID, err)
	}

	h := rec.toDomain()
	return &h, nil
}

// ListAll returns every head including soft-deleted ones.
func (r *HeadRepo) ListAll(ctx context.Context) ([]domain.TopicHead, error) {
	var records []headRecord
	err := r.db.view(ctx, func(txn *dgbadger.Txn) error {
		var err error
		records, err = scanJSON[headRecord](txn, []byte(prefixHead))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list topic heads: %w", err)
	}

	result := make([]domain.TopicHead, len(records))
	for i, rec := range records {
		result[i] = rec.toDomain()
	}
	return result, nil
}

// FindChildren returns the live heads whose latest version names topicID as
// parent, ordered by creation time.
func (r *HeadRepo) FindChildren(ctx context.Context, topicID uuid.UUID) ([]domain.TopicHead, error) {
	type child struct {
		head    domain.TopicHead
		created versionRecord
	}
	var children []child

	prefix := childPrefix(topicID)
	err := r.db.view(ctx, func(txn *dgbadger.Txn) error {
		for _, key := range scanKeys(txn, prefix) {
			childID, err := idFromKey(key, prefix)
			if err != nil {
				return fmt.Errorf("decode child key %s: %w", key, err)
			}

			var head headRecord
			if err := getJSON(txn, headKey(childID), &head); err != nil {
				return fmt.Errorf("child %s: %w", childID, err)
			}
			var latest versionRecord
			if err := getJSON(txn, versionKey(childID, head.LatestVersion), &latest); err != nil {
				return fmt.Errorf("child %s: %w", childID, err)
			}
			if head.DeletedAt != nil || latest.ParentTopicID == nil || *latest.ParentTopicID != topicID {
				continue
			}
			children = append(children, child{head: head.toDomain(), created: latest})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find children of %s: %w", topicID, err)
	}

	sort.Slice(children, func(i, j int) bool {
		a, b := children[i].created, children[j].created
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.TopicID.String() < b.TopicID.String()
	})

	result := make([]domain.TopicHead, len(children))
	for i, c := range children {
		result[i] = c.head
	}
	return result, nil
}
