package usecase

import (
	"context"
	"log/slog"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// QueryUseCase implements port.CampaignQueries over the projection store.
// Reads carry no invariant logic beyond visibility: Deleted rows are
// filtered at every level while the list total counts all campaign rows.
type QueryUseCase struct {
	projections port.CampaignProjections
	logger      *slog.Logger
}

// NewQueryUseCase wires the read side.
func NewQueryUseCase(projections port.CampaignProjections, logger *slog.Logger) *QueryUseCase {
	return &QueryUseCase{projections: projections, logger: logger}
}

// FindAllCampaigns returns one page of campaign subtrees plus the total
// campaign count.
func (u *QueryUseCase) FindAllCampaigns(ctx context.Context, take, skip int) (*domain.CampaignPage, error) {
	page, err := u.projections.FindAll(ctx, take, skip)
	if err != nil {
		return nil, err
	}
	u.logger.Debug("campaigns listed",
		slog.Int("returned", len(page.List)), slog.Int64("total", page.Count))
	return page, nil
}

// FindCampaignByID returns one campaign subtree. A missing or Deleted
// campaign is a not-found error.
func (u *QueryUseCase) FindCampaignByID(ctx context.Context, id string) (*domain.CampaignTree, error) {
	tree, err := u.projections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, domain.NotFound(domain.CodeCampaignNotFound, map[string]any{"id": id})
	}
	return tree, nil
}
