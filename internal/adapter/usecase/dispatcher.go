package usecase

import (
	"context"
	"fmt"

	"mesa-campaigns/internal/core/port"
)

// Dispatcher routes each command kind to exactly one handler. Commands
// form a sealed union, so dispatch is a plain type switch rather than
// reflection-based registration. Delete commands return a nil result.
type Dispatcher struct {
	campaigns port.CampaignUseCase
	adSets    port.AdSetUseCase
	ads       port.AdUseCase
}

// NewDispatcher wires the dispatcher with one handler set per entity.
func NewDispatcher(campaigns port.CampaignUseCase, adSets port.AdSetUseCase, ads port.AdUseCase) *Dispatcher {
	return &Dispatcher{campaigns: campaigns, adSets: adSets, ads: ads}
}

// Dispatch executes cmd through its handler and returns the resulting
// entity projection, or a typed domain error. An unknown command kind is
// a programming error and fails outright.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd port.Command) (any, error) {
	switch c := cmd.(type) {
	case port.CreateCampaign:
		return d.campaigns.CreateCampaign(ctx, c)
	case port.UpdateCampaign:
		return d.campaigns.UpdateCampaign(ctx, c)
	case port.SwitchCampaignStatus:
		return d.campaigns.SwitchCampaignStatus(ctx, c)
	case port.AdjustCampaignBudget:
		return d.campaigns.AdjustCampaignBudget(ctx, c)
	case port.CreateAdSet:
		return d.adSets.CreateAdSet(ctx, c)
	case port.UpdateAdSet:
		return d.adSets.UpdateAdSet(ctx, c)
	case port.SwitchAdSetStatus:
		return d.adSets.SwitchAdSetStatus(ctx, c)
	case port.DeleteAdSet:
		return nil, d.adSets.DeleteAdSet(ctx, c)
	case port.CreateAd:
		return d.ads.CreateAd(ctx, c)
	case port.UpdateAd:
		return d.ads.UpdateAd(ctx, c)
	case port.SwitchAdStatus:
		return d.ads.SwitchAdStatus(ctx, c)
	case port.DeleteAd:
		return nil, d.ads.DeleteAd(ctx, c)
	default:
		return nil, fmt.Errorf("no handler for command %T", cmd)
	}
}
