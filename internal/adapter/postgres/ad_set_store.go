package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

const adSetColumns = "id, campaign_id, name, budget, status"

// AdSetStore implements port.AdSetStore using pgx. Every write also
// bumps the owning campaign's version in the same transaction.
type AdSetStore struct {
	pool *pgxpool.Pool
}

// NewAdSetStore returns a new store instance.
func NewAdSetStore(pool *pgxpool.Pool) *AdSetStore {
	return &AdSetStore{pool: pool}
}

func scanAdSet(row pgx.Row) (*domain.AdSet, error) {
	var as domain.AdSet
	err := row.Scan(&as.ID, &as.CampaignID, &as.Name, &as.Budget, &as.Status)
	if err != nil {
		return nil, err
	}
	return &as, nil
}

// Get fetches an ad set by id, optionally locking the row. It returns
// (nil, nil) when no row exists.
func (s *AdSetStore) Get(ctx context.Context, id string, lock port.LockMode) (*domain.AdSet, error) {
	query := `SELECT ` + adSetColumns + ` FROM ad_sets WHERE id = $1` + lockClause(lock)
	as, err := scanAdSet(conn(ctx, s.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateLockErr(err)
	}
	return as, nil
}

// ListByCampaign returns the campaign's ad sets excluding Deleted ones.
func (s *AdSetStore) ListByCampaign(ctx context.Context, campaignID string, lock port.LockMode) ([]domain.AdSet, error) {
	query := `SELECT ` + adSetColumns + ` FROM ad_sets
              WHERE campaign_id = $1 AND status <> $2` + lockClause(lock)
	rows, err := conn(ctx, s.pool).Query(ctx, query, campaignID, domain.StatusDeleted)
	if err != nil {
		return nil, translateLockErr(err)
	}
	adSets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AdSet, error) {
		var as domain.AdSet
		err := row.Scan(&as.ID, &as.CampaignID, &as.Name, &as.Budget, &as.Status)
		return as, err
	})
	if err != nil {
		return nil, translateLockErr(err)
	}
	return adSets, nil
}

// Create inserts an ad set with status Paused and bumps the owning
// campaign's version.
func (s *AdSetStore) Create(ctx context.Context, campaignID, name string, budget int64) (*domain.AdSet, error) {
	q := conn(ctx, s.pool)
	query := `INSERT INTO ad_sets (id, campaign_id, name, budget, status)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING ` + adSetColumns
	as, err := scanAdSet(q.QueryRow(ctx, query,
		uuid.NewString(), campaignID, name, budget, domain.StatusPaused))
	if err != nil {
		return nil, err
	}
	if err = bumpCampaignVersion(ctx, q, campaignID); err != nil {
		return nil, err
	}
	return as, nil
}

// Update applies the patch and bumps the owning campaign's version.
func (s *AdSetStore) Update(ctx context.Context, id string, patch port.AdSetPatch) (*domain.AdSet, error) {
	var sets []string
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if len(sets) == 0 {
		return s.Get(ctx, id, port.LockNone)
	}

	q := conn(ctx, s.pool)
	query := `UPDATE ad_sets SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + adSetColumns
	as, err := scanAdSet(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err = bumpCampaignVersion(ctx, q, as.CampaignID); err != nil {
		return nil, err
	}
	return as, nil
}
