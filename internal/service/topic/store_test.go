package topic

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/pkg/ctxutil"
)

// memStore backs the repository mocks with a small in-memory log so that
// multi-step scenarios can be exercised end to end.
type memStore struct {
	mu        sync.Mutex
	versions  []domain.TopicVersion
	heads     map[uuid.UUID]domain.TopicHead
	headOrder []uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{heads: make(map[uuid.UUID]domain.TopicHead)}
}

func (m *memStore) versionLog() *versionLogMock {
	return &versionLogMock{
		AppendFunc: func(ctx context.Context, v *domain.TopicVersion) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			for _, existing := range m.versions {
				if existing.TopicID == v.TopicID && existing.Version == v.Version {
					return fmt.Errorf("version %s/%d: %w", v.TopicID, v.Version, domain.ErrAlreadyExists)
				}
			}
			m.versions = append(m.versions, *v)
			return nil
		},
		GetByTopicAndVersionFunc: func(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			for _, v := range m.versions {
				if v.TopicID == topicID && v.Version == version {
					c := v
					return &c, nil
				}
			}
			return nil, fmt.Errorf("version %s/%d: %w", topicID, version, domain.ErrNotFound)
		},
		ListAllFunc: func(ctx context.Context) ([]domain.TopicVersion, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			return append([]domain.TopicVersion(nil), m.versions...), nil
		},
		ListByTopicFunc: func(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			var out []domain.TopicVersion
			for _, v := range m.versions {
				if v.TopicID == topicID {
					out = append(out, v)
				}
			}
			return out, nil
		},
	}
}

func (m *memStore) topicHeads() *topicHeadsMock {
	return &topicHeadsMock{
		UpsertFunc: func(ctx context.Context, head domain.TopicHead) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.heads[head.TopicID]; !ok {
				m.headOrder = append(m.headOrder, head.TopicID)
			}
			m.heads[head.TopicID] = head
			return nil
		},
		GetFunc: func(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			h, ok := m.heads[topicID]
			if !ok {
				return nil, fmt.Errorf("head %s: %w", topicID, domain.ErrNotFound)
			}
			return &h, nil
		},
		ListAllFunc: func(ctx context.Context) ([]domain.TopicHead, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			out := make([]domain.TopicHead, 0, len(m.headOrder))
			for _, id := range m.headOrder {
				out = append(out, m.heads[id])
			}
			return out, nil
		},
		FindChildrenFunc: func(ctx context.Context, topicID uuid.UUID) ([]domain.TopicHead, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			latest := domain.LatestVersions(m.versions)
			var out []domain.TopicHead
			for _, id := range m.headOrder {
				h := m.heads[id]
				v, ok := latest[id]
				if !h.IsAlive() || !ok || v.ParentTopicID == nil || *v.ParentTopicID != topicID {
					continue
				}
				out = append(out, h)
			}
			return out, nil
		},
	}
}

func (m *memStore) versionsOf(topicID uuid.UUID) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int
	for _, v := range m.versions {
		if v.TopicID == topicID {
			out = append(out, v.Version)
		}
	}
	return out
}

func (m *memStore) head(t *testing.T, topicID uuid.UUID) domain.TopicHead {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.heads[topicID]
	if !ok {
		t.Fatalf("no head for %s", topicID)
	}
	return h
}

// testEnv bundles a Service with the mocks it was built from.
type testEnv struct {
	svc       *Service
	store     *memStore
	versions  *versionLogMock
	heads     *topicHeadsMock
	resources *resourceCleanerMock
	tx        *txManagerMock
	metrics   *mutationRecorderMock
	ctx       context.Context
	actor     uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	env := &testEnv{
		store:     store,
		versions:  store.versionLog(),
		heads:     store.topicHeads(),
		resources: defaultResourceMock(),
		tx:        defaultTxMock(),
		metrics:   &mutationRecorderMock{RecordTopicMutationFunc: func(domain.TopicAction) {}},
		actor:     uuid.New(),
	}
	env.svc = NewService(slogDiscard(), env.versions, env.heads, env.resources, env.tx, env.metrics)
	env.svc.clock = tickingClock()
	env.ctx = ctxutil.WithUserID(context.Background(), env.actor)
	return env
}

// defaultTxMock returns a txManagerMock that simply calls the function with the same context.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

func defaultResourceMock() *resourceCleanerMock {
	return &resourceCleanerMock{
		DeleteByTopicFunc: func(ctx context.Context, topicID uuid.UUID) (int, error) {
			return 0, nil
		},
	}
}

// tickingClock advances one second per call so versions get distinct timestamps.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func (e *testEnv) create(t *testing.T, name string, parent *uuid.UUID) uuid.UUID {
	t.Helper()
	v, err := e.svc.CreateTopic(e.ctx, CreateTopicInput{Name: name, Content: name + " content", ParentTopicID: parent})
	if err != nil {
		t.Fatalf("create %q: %v", name, err)
	}
	return v.TopicID
}

func ptr[T any](v T) *T { return &v }

func slogDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
