package db

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx that repositories use,
// so a query transparently joins an in-flight transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// WithTx returns a context carrying tx so multi-step writes share one
// transaction.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction carried by ctx, or nil.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

type hooksKey struct{}

type hookList struct {
	mu  sync.Mutex
	fns []func(context.Context)
}

func (h *hookList) add(fn func(context.Context)) {
	h.mu.Lock()
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
}

func (h *hookList) run(ctx context.Context) {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn(ctx)
	}
}

// AfterCommit schedules fn to run once the surrounding transaction commits.
// Outside a transaction fn runs immediately. Cache invalidation rides on
// this so stale keys are only dropped for state that is actually visible.
func AfterCommit(ctx context.Context, fn func(context.Context)) {
	if h, ok := ctx.Value(hooksKey{}).(*hookList); ok {
		h.add(fn)
		return
	}
	fn(ctx)
}

// InTx runs fn inside a transaction carried on the context. A nested call
// joins the outer transaction instead of opening a new one. The transaction
// commits only when fn returns nil; AfterCommit hooks registered by fn run
// after a successful commit.
func InTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	hooks := &hookList{}
	txCtx := context.WithValue(WithTx(ctx, tx), hooksKey{}, hooks)
	if err := fn(txCtx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	hooks.run(ctx)
	return nil
}
