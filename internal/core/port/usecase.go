package port

import (
	"context"

	"mesa-campaigns/internal/core/domain"
)

// CampaignUseCase holds the campaign-level command handlers. Each call
// runs inside one transaction and either commits its full effect or
// returns a typed domain error with nothing persisted.
type CampaignUseCase interface {
	CreateCampaign(ctx context.Context, cmd CreateCampaign) (*domain.Campaign, error)
	UpdateCampaign(ctx context.Context, cmd UpdateCampaign) (*domain.Campaign, error)
	SwitchCampaignStatus(ctx context.Context, cmd SwitchCampaignStatus) (*domain.Campaign, error)
	AdjustCampaignBudget(ctx context.Context, cmd AdjustCampaignBudget) (*domain.Campaign, error)
}

// AdSetUseCase holds the ad set command handlers.
type AdSetUseCase interface {
	CreateAdSet(ctx context.Context, cmd CreateAdSet) (*domain.AdSet, error)
	UpdateAdSet(ctx context.Context, cmd UpdateAdSet) (*domain.AdSet, error)
	SwitchAdSetStatus(ctx context.Context, cmd SwitchAdSetStatus) (*domain.AdSet, error)
	DeleteAdSet(ctx context.Context, cmd DeleteAdSet) error
}

// AdUseCase holds the ad command handlers.
type AdUseCase interface {
	CreateAd(ctx context.Context, cmd CreateAd) (*domain.Ad, error)
	UpdateAd(ctx context.Context, cmd UpdateAd) (*domain.Ad, error)
	SwitchAdStatus(ctx context.Context, cmd SwitchAdStatus) (*domain.Ad, error)
	DeleteAd(ctx context.Context, cmd DeleteAd) error
}

// CampaignQueries is the read side: campaign subtrees for listing and
// detail views. FindCampaignByID returns a not-found domain error for a
// missing or Deleted campaign.
type CampaignQueries interface {
	FindAllCampaigns(ctx context.Context, take, skip int) (*domain.CampaignPage, error)
	FindCampaignByID(ctx context.Context, id string) (*domain.CampaignTree, error)
}
