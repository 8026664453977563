package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-campaigns/internal/core/port"
)

// lockNotAvailable is the SQLSTATE raised by FOR UPDATE NOWAIT when the
// row is held by another transaction.
const lockNotAvailable = "55P03"

type txKey struct{}

// TxManager implements port.TxManager on a pgx pool. The open transaction
// is carried in the context so store calls made inside fn join it.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager returns a transaction manager over the pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithinTx begins a transaction, runs fn with the transaction bound to
// the context, and commits. Any error from fn rolls the whole
// transaction back and is returned unchanged.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn returns the transaction bound to ctx, or the pool when the call is
// made outside a transaction.
func conn(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// lockClause renders the SELECT suffix for the requested lock mode.
func lockClause(mode port.LockMode) string {
	switch mode {
	case port.LockUpdate:
		return " FOR UPDATE"
	case port.LockUpdateNoWait:
		return " FOR UPDATE NOWAIT"
	default:
		return ""
	}
}

// translateLockErr maps the NOWAIT failure onto port.ErrLockNotAvailable
// so handlers can turn it into a locked conflict. Other errors pass
// through untouched.
func translateLockErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == lockNotAvailable {
		return fmt.Errorf("%w: %s", port.ErrLockNotAvailable, pgErr.Message)
	}
	return err
}

// bumpCampaignVersion advances the cascading concurrency token on the
// campaign row. Every ad set or ad write goes through one of these in the
// same transaction as the write itself.
func bumpCampaignVersion(ctx context.Context, q querier, campaignID string) error {
	_, err := q.Exec(ctx,
		`UPDATE campaigns SET version = version + 1, updated_at = now() WHERE id = $1`,
		campaignID)
	return err
}

// bumpCampaignVersionByAdSet resolves the owning campaign through the ad
// set row and bumps its version.
func bumpCampaignVersionByAdSet(ctx context.Context, q querier, adSetID string) error {
	_, err := q.Exec(ctx,
		`UPDATE campaigns SET version = version + 1, updated_at = now()
         WHERE id = (SELECT campaign_id FROM ad_sets WHERE id = $1)`,
		adSetID)
	return err
}
