package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-campaigns/internal/core/domain"
)

// ProjectionStore implements port.CampaignProjections: read-only nested
// views over the campaign subtree. Deleted rows are filtered at every
// level; the list total deliberately counts all campaign rows by id,
// including Deleted ones.
type ProjectionStore struct {
	pool *pgxpool.Pool
}

// NewProjectionStore returns a new projection store.
func NewProjectionStore(pool *pgxpool.Pool) *ProjectionStore {
	return &ProjectionStore{pool: pool}
}

// FindAll returns one page of non-Deleted campaigns with their nested
// non-Deleted ad sets and ads, plus the total row count.
func (s *ProjectionStore) FindAll(ctx context.Context, take, skip int) (*domain.CampaignPage, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaigns
         WHERE status <> $1
         ORDER BY created_at, id
         LIMIT $2 OFFSET $3`,
		domain.StatusDeleted, take, skip)
	if err != nil {
		return nil, err
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(&c.ID, &c.Name, &c.Budget, &c.Status, &c.Version, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(campaigns))
	for i, c := range campaigns {
		ids[i] = c.ID
	}
	trees, err := s.assemble(ctx, campaigns, ids)
	if err != nil {
		return nil, err
	}

	var count int64
	if err = s.pool.QueryRow(ctx, `SELECT count(*) FROM campaigns`).Scan(&count); err != nil {
		return nil, err
	}
	return &domain.CampaignPage{List: trees, Count: count}, nil
}

// FindByID returns one campaign with its nested non-Deleted ad sets and
// ads. It returns (nil, nil) when the campaign is missing or Deleted,
// matching the visibility of the list view.
func (s *ProjectionStore) FindByID(ctx context.Context, id string) (*domain.CampaignTree, error) {
	c, err := scanCampaign(s.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 AND status <> $2`,
		id, domain.StatusDeleted))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	trees, err := s.assemble(ctx, []domain.Campaign{*c}, []string{c.ID})
	if err != nil {
		return nil, err
	}
	return &trees[0], nil
}

// assemble loads the non-Deleted ad sets and ads for the given campaigns
// and nests them under their parents.
func (s *ProjectionStore) assemble(ctx context.Context, campaigns []domain.Campaign, ids []string) ([]domain.CampaignTree, error) {
	trees := make([]domain.CampaignTree, len(campaigns))
	for i, c := range campaigns {
		trees[i] = domain.CampaignTree{Campaign: c, AdSets: []domain.AdSetTree{}}
	}
	if len(ids) == 0 {
		return trees, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+adSetColumns+` FROM ad_sets
         WHERE campaign_id = ANY($1::uuid[]) AND status <> $2`,
		ids, domain.StatusDeleted)
	if err != nil {
		return nil, err
	}
	adSets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AdSet, error) {
		var as domain.AdSet
		err := row.Scan(&as.ID, &as.CampaignID, &as.Name, &as.Budget, &as.Status)
		return as, err
	})
	if err != nil {
		return nil, err
	}

	adSetIDs := make([]string, len(adSets))
	for i, as := range adSets {
		adSetIDs[i] = as.ID
	}
	adsByAdSet := map[string][]domain.Ad{}
	if len(adSetIDs) > 0 {
		rows, err = s.pool.Query(ctx,
			`SELECT `+adColumns+` FROM ads
             WHERE ad_set_id = ANY($1::uuid[]) AND status <> $2`,
			adSetIDs, domain.StatusDeleted)
		if err != nil {
			return nil, err
		}
		ads, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ad, error) {
			var a domain.Ad
			err := row.Scan(&a.ID, &a.AdSetID, &a.Name, &a.Content, &a.Creative, &a.Status)
			return a, err
		})
		if err != nil {
			return nil, err
		}
		for _, a := range ads {
			adsByAdSet[a.AdSetID] = append(adsByAdSet[a.AdSetID], a)
		}
	}

	treeIndex := make(map[string]int, len(trees))
	for i, t := range trees {
		treeIndex[t.ID] = i
	}
	for _, as := range adSets {
		ads := adsByAdSet[as.ID]
		if ads == nil {
			ads = []domain.Ad{}
		}
		i := treeIndex[as.CampaignID]
		trees[i].AdSets = append(trees[i].AdSets, domain.AdSetTree{AdSet: as, Ads: ads})
	}
	return trees, nil
}
