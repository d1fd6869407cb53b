package badger

import (
	"context"
	"errors"
	"fmt"

	dgbadger "github.com/dgraph-io/badger/v4"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

type txnCtxKey struct{}

func withTxn(ctx context.Context, txn *dgbadger.Txn) context.Context {
	return context.WithValue(ctx, txnCtxKey{}, txn)
}

func txnFromCtx(ctx context.Context) (*dgbadger.Txn, bool) {
	txn, ok := ctx.Value(txnCtxKey{}).(*dgbadger.Txn)
	return txn, ok
}

// TxManager runs callbacks inside a single read-write badger transaction.
// Repositories called with the returned context join that transaction.
type TxManager struct {
	db *DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db *DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx executes fn within a transaction and commits it when fn succeeds.
// A call nested inside another RunInTx joins the outer transaction.
// A write-write conflict detected at commit surfaces as domain.ErrConflict.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := txnFromCtx(ctx); ok {
		return fn(ctx)
	}

	txn := m.db.db.NewTransaction(true)
	defer txn.Discard()

	if err := fn(withTxn(ctx, txn)); err != nil {
		return err
	}

	if err := txn.Commit(); err != nil {
		return mapError(fmt.Errorf("commit transaction: %w", err))
	}

	return nil
}

// update runs fn in the ambient transaction if there is one, otherwise in its own.
func (d *DB) update(ctx context.Context, fn func(txn *dgbadger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if txn, ok := txnFromCtx(ctx); ok {
		return fn(txn)
	}
	return mapError(d.db.Update(fn))
}

// view runs fn read-only, joining the ambient transaction if there is one.
func (d *DB) view(ctx context.Context, fn func(txn *dgbadger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if txn, ok := txnFromCtx(ctx); ok {
		return fn(txn)
	}
	return d.db.View(fn)
}

// mapError converts badger transaction errors to domain errors.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dgbadger.ErrConflict):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case errors.Is(err, dgbadger.ErrKeyNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}
