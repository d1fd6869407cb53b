// Package badger stores topics, resources and users in an embedded BadgerDB.
// It is the default single-node storage driver.
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	dgbadger "github.com/dgraph-io/badger/v4"

	"github.com/heartmarshall/knowledge-base/internal/config"
)

const gcDiscardRatio = 0.5

// DB wraps a badger database and its value log GC loop.
type DB struct {
	db     *dgbadger.DB
	log    *slog.Logger
	stopGC chan struct{}
	doneGC chan struct{}
}

// badgerLogger routes badger's internal logging into slog.
type badgerLogger struct {
	log *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

// Open opens (or creates) the database described by cfg and starts periodic
// value log GC for on-disk databases.
func Open(cfg config.BadgerConfig, log *slog.Logger) (*DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger: path is required for persistent database")
	}

	var opts dgbadger.Options
	if cfg.InMemory {
		opts = dgbadger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", cfg.Path, err)
		}
		opts = dgbadger.DefaultOptions(cfg.Path)
	}

	storeLog := log.With("component", "badger")
	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{log: storeLog})

	db, err := dgbadger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	d := &DB{db: db, log: storeLog}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		d.stopGC = make(chan struct{})
		d.doneGC = make(chan struct{})
		go d.runGC(cfg.GCInterval)
	}

	return d, nil
}

// OpenInMemory opens a throwaway in-memory database.
func OpenInMemory(log *slog.Logger) (*DB, error) {
	return Open(config.BadgerConfig{InMemory: true}, log)
}

func (d *DB) runGC(interval time.Duration) {
	defer close(d.doneGC)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopGC:
			return
		case <-ticker.C:
			err := d.db.RunValueLogGC(gcDiscardRatio)
			if err != nil && !errors.Is(err, dgbadger.ErrNoRewrite) {
				d.log.Warn("badger value log GC failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Ping reports whether the database is open.
func (d *DB) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.db.IsClosed() {
		return errors.New("badger: database is closed")
	}
	return nil
}

// Close stops GC and closes the database.
func (d *DB) Close() error {
	if d.stopGC != nil {
		close(d.stopGC)
		<-d.doneGC
	}
	return d.db.Close()
}
