package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/adapter/badger"
	"github.com/heartmarshall/knowledge-base/internal/adapter/postgres"
	pgresource "github.com/heartmarshall/knowledge-base/internal/adapter/postgres/resource"
	pgtopic "github.com/heartmarshall/knowledge-base/internal/adapter/postgres/topic"
	pguser "github.com/heartmarshall/knowledge-base/internal/adapter/postgres/user"
	"github.com/heartmarshall/knowledge-base/internal/adapter/redis"
	"github.com/heartmarshall/knowledge-base/internal/config"
	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// VersionLog is the append-only topic version log.
type VersionLog interface {
	Append(ctx context.Context, v *domain.TopicVersion) error
	GetByTopicAndVersion(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error)
	ListAll(ctx context.Context) ([]domain.TopicVersion, error)
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error)
}

// HeadIndex tracks the current version of every topic.
type HeadIndex interface {
	Upsert(ctx context.Context, head domain.TopicHead) error
	Get(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error)
	ListAll(ctx context.Context) ([]domain.TopicHead, error)
	FindChildren(ctx context.Context, topicID uuid.UUID) ([]domain.TopicHead, error)
}

// ResourceStore persists resources attached to topics.
type ResourceStore interface {
	Create(ctx context.Context, r *domain.Resource) error
	Update(ctx context.Context, r *domain.Resource) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error)
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error)
}

// UserStore persists users.
type UserStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

// TxRunner runs fn in one storage transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Storage bundles the repositories of one driver.
type Storage struct {
	Driver    string
	Versions  VersionLog
	Heads     HeadIndex
	Resources ResourceStore
	Users     UserStore
	Tx        TxRunner

	ping  func(ctx context.Context) error
	close func() error
}

// Ping checks that the backend is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Storage) Close() error {
	return s.close()
}

// OpenStorage connects to the backend named by cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	log = log.With("storage", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Database, log)
	case config.DriverBadger:
		return openBadger(cfg.Badger, log)
	case config.DriverRedis:
		return openRedis(ctx, cfg.Redis, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Storage, error) {
	if cfg.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.DSN, log); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Storage{
		Driver:    config.DriverPostgres,
		Versions:  pgtopic.NewVersionRepo(pool),
		Heads:     pgtopic.NewHeadRepo(pool),
		Resources: pgresource.New(pool),
		Users:     pguser.New(pool),
		Tx:        postgres.NewTxManager(pool),
		ping:      pool.Ping,
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func openBadger(cfg config.BadgerConfig, log *slog.Logger) (*Storage, error) {
	db, err := badger.Open(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Storage{
		Driver:    config.DriverBadger,
		Versions:  badger.NewVersionRepo(db),
		Heads:     badger.NewHeadRepo(db),
		Resources: badger.NewResourceRepo(db),
		Users:     badger.NewUserRepo(db),
		Tx:        badger.NewTxManager(db),
		ping:      db.Ping,
		close:     db.Close,
	}, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (*Storage, error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx); err != nil {
		client.Close() //nolint:errcheck
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Warn("redis driver runs mutations without transactions")

	return &Storage{
		Driver:    config.DriverRedis,
		Versions:  redis.NewVersionRepo(client),
		Heads:     redis.NewHeadRepo(client),
		Resources: redis.NewResourceRepo(client),
		Users:     redis.NewUserRepo(client),
		Tx:        redis.NewTxManager(),
		ping:      client.Ping,
		close:     client.Close,
	}, nil
}
