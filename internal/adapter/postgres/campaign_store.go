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

const campaignColumns = "id, name, budget, status, version, created_at, updated_at"

// CampaignStore implements port.CampaignStore using pgx.
type CampaignStore struct {
	pool *pgxpool.Pool
}

// NewCampaignStore returns a new store instance.
func NewCampaignStore(pool *pgxpool.Pool) *CampaignStore {
	return &CampaignStore{pool: pool}
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.Name, &c.Budget, &c.Status, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get fetches a campaign by id, optionally locking the row. It returns
// (nil, nil) when no row exists.
func (s *CampaignStore) Get(ctx context.Context, id string, lock port.LockMode) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1` + lockClause(lock)
	c, err := scanCampaign(conn(ctx, s.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateLockErr(err)
	}
	return c, nil
}

// Create inserts a campaign. New campaigns start Paused with version 1;
// timestamps are set server-side.
func (s *CampaignStore) Create(ctx context.Context, name string, budget int64) (*domain.Campaign, error) {
	query := `INSERT INTO campaigns (id, name, budget, status)
              VALUES ($1, $2, $3, $4)
              RETURNING ` + campaignColumns
	return scanCampaign(conn(ctx, s.pool).QueryRow(ctx, query,
		uuid.NewString(), name, budget, domain.StatusPaused))
}

// Update applies the patch, bumps version and updatedAt, and returns the
// new row. The write is guarded by expectedVersion; (nil, nil) means the
// row no longer carries that version.
func (s *CampaignStore) Update(ctx context.Context, id string, expectedVersion int64, patch port.CampaignPatch) (*domain.Campaign, error) {
	sets := []string{"version = version + 1", "updated_at = now()"}
	args := []any{id, expectedVersion}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Budget != nil {
		add("budget", *patch.Budget)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	query := `UPDATE campaigns SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND version = $2 RETURNING ` + campaignColumns
	c, err := scanCampaign(conn(ctx, s.pool).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
