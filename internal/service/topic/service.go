package topic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/pkg/ctxutil"
)

type versionLog interface {
	Append(ctx context.Context, v *domain.TopicVersion) error
	GetByTopicAndVersion(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error)
	ListAll(ctx context.Context) ([]domain.TopicVersion, error)
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error)
}

type topicHeads interface {
	Upsert(ctx context.Context, head domain.TopicHead) error
	Get(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error)
	ListAll(ctx context.Context) ([]domain.TopicHead, error)
	FindChildren(ctx context.Context, topicID uuid.UUID) ([]domain.TopicHead, error)
}

type resourceCleaner interface {
	DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type mutationRecorder interface {
	RecordTopicMutation(action domain.TopicAction)
}

// Service implements the topic versioning and graph use cases.
type Service struct {
	versions  versionLog
	heads     topicHeads
	resources resourceCleaner
	tx        txManager
	metrics   mutationRecorder
	log       *slog.Logger
	clock     func() time.Time
}

// NewService creates a new Topic service.
func NewService(
	log *slog.Logger,
	versions versionLog,
	heads topicHeads,
	resources resourceCleaner,
	tx txManager,
	metrics mutationRecorder,
) *Service {
	return &Service{
		versions:  versions,
		heads:     heads,
		resources: resources,
		tx:        tx,
		metrics:   metrics,
		log:       log.With("service", "topic"),
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// appendAndAdvance writes v and moves the head onto it in one transaction.
func (s *Service) appendAndAdvance(ctx context.Context, v *domain.TopicVersion, deletedAt *time.Time) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.versions.Append(txCtx, v); err != nil {
			return fmt.Errorf("append version: %w", err)
		}
		head := domain.TopicHead{TopicID: v.TopicID, LatestVersion: v.Version, DeletedAt: deletedAt}
		if err := s.heads.Upsert(txCtx, head); err != nil {
			return fmt.Errorf("upsert head: %w", err)
		}
		if deletedAt != nil {
			if _, err := s.resources.DeleteByTopic(txCtx, v.TopicID); err != nil {
				return fmt.Errorf("delete resources: %w", err)
			}
		}
		return nil
	})
}

// liveHead returns the head of topicID or ErrNotFound if absent or deleted.
func (s *Service) liveHead(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error) {
	head, err := s.heads.Get(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("get head: %w", err)
	}
	if !head.IsAlive() {
		return nil, fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}
	return head, nil
}

// currentVersion returns the version the head points at.
func (s *Service) currentVersion(ctx context.Context, head *domain.TopicHead) (*domain.TopicVersion, error) {
	v, err := s.versions.GetByTopicAndVersion(ctx, head.TopicID, head.LatestVersion)
	if err != nil {
		return nil, fmt.Errorf("get version %d: %w", head.LatestVersion, err)
	}
	return v, nil
}

// checkParent verifies that parentID names a live topic.
func (s *Service) checkParent(ctx context.Context, parentID uuid.UUID) error {
	head, err := s.heads.Get(ctx, parentID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("parent %s: %w", parentID, domain.ErrInvalidReference)
	}
	if err != nil {
		return fmt.Errorf("get parent head: %w", err)
	}
	if !head.IsAlive() {
		return fmt.Errorf("parent %s: %w", parentID, domain.ErrInvalidReference)
	}
	return nil
}

func actorFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}
