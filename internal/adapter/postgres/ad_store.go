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

const adColumns = "id, ad_set_id, name, content, creative, status"

// AdStore implements port.AdStore using pgx. Writes bump the owning
// campaign's version through the ad set row.
type AdStore struct {
	pool *pgxpool.Pool
}

// NewAdStore returns a new store instance.
func NewAdStore(pool *pgxpool.Pool) *AdStore {
	return &AdStore{pool: pool}
}

func scanAd(row pgx.Row) (*domain.Ad, error) {
	var a domain.Ad
	err := row.Scan(&a.ID, &a.AdSetID, &a.Name, &a.Content, &a.Creative, &a.Status)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Get fetches an ad by id, optionally locking the row. It returns
// (nil, nil) when no row exists.
func (s *AdStore) Get(ctx context.Context, id string, lock port.LockMode) (*domain.Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads WHERE id = $1` + lockClause(lock)
	a, err := scanAd(conn(ctx, s.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateLockErr(err)
	}
	return a, nil
}

// ListByAdSet returns the ad set's ads excluding Deleted ones.
func (s *AdStore) ListByAdSet(ctx context.Context, adSetID string, lock port.LockMode) ([]domain.Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads
              WHERE ad_set_id = $1 AND status <> $2` + lockClause(lock)
	rows, err := conn(ctx, s.pool).Query(ctx, query, adSetID, domain.StatusDeleted)
	if err != nil {
		return nil, translateLockErr(err)
	}
	ads, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ad, error) {
		var a domain.Ad
		err := row.Scan(&a.ID, &a.AdSetID, &a.Name, &a.Content, &a.Creative, &a.Status)
		return a, err
	})
	if err != nil {
		return nil, translateLockErr(err)
	}
	return ads, nil
}

// Create inserts an ad with status Paused and bumps the owning campaign's
// version through the ad set.
func (s *AdStore) Create(ctx context.Context, adSetID, name, content, creative string) (*domain.Ad, error) {
	q := conn(ctx, s.pool)
	query := `INSERT INTO ads (id, ad_set_id, name, content, creative, status)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING ` + adColumns
	a, err := scanAd(q.QueryRow(ctx, query,
		uuid.NewString(), adSetID, name, content, creative, domain.StatusPaused))
	if err != nil {
		return nil, err
	}
	if err = bumpCampaignVersionByAdSet(ctx, q, adSetID); err != nil {
		return nil, err
	}
	return a, nil
}

// Update applies the patch and bumps the owning campaign's version.
func (s *AdStore) Update(ctx context.Context, id string, patch port.AdPatch) (*domain.Ad, error) {
	var sets []string
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Creative != nil {
		add("creative", *patch.Creative)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if len(sets) == 0 {
		return s.Get(ctx, id, port.LockNone)
	}

	q := conn(ctx, s.pool)
	query := `UPDATE ads SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + adColumns
	a, err := scanAd(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err = bumpCampaignVersionByAdSet(ctx, q, a.AdSetID); err != nil {
		return nil, err
	}
	return a, nil
}
