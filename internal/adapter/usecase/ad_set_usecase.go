package usecase

import (
	"context"
	"log/slog"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// AdSetUseCase implements the ad set command handlers. The owning
// campaign row is locked first (blocking) so concurrent commands on the
// same subtree serialize; the campaign version is the concurrency token
// checked against the caller-supplied one.
type AdSetUseCase struct {
	tx        port.TxManager
	campaigns port.CampaignStore
	adSets    port.AdSetStore
	ads       port.AdStore
	logger    *slog.Logger
}

// NewAdSetUseCase wires the ad set handlers with their stores.
func NewAdSetUseCase(tx port.TxManager, campaigns port.CampaignStore, adSets port.AdSetStore, ads port.AdStore, logger *slog.Logger) *AdSetUseCase {
	return &AdSetUseCase{tx: tx, campaigns: campaigns, adSets: adSets, ads: ads, logger: logger}
}

// CreateAdSet inserts a new ad set under the campaign, capped at
// MaxAdSetsPerCampaign non-deleted ad sets. The new ad set starts Paused.
func (u *AdSetUseCase) CreateAdSet(ctx context.Context, cmd port.CreateAdSet) (*domain.AdSet, error) {
	var result *domain.AdSet
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		campaign, err := u.campaigns.Get(ctx, cmd.CampaignID, port.LockUpdate)
		if err != nil {
			return err
		}
		if campaign == nil {
			return domain.NotFound(domain.CodeCampaignNotFound, map[string]any{"campaignId": cmd.CampaignID})
		}

		existing, err := u.adSets.ListByCampaign(ctx, cmd.CampaignID, port.LockNone)
		if err != nil {
			return err
		}
		if len(existing) >= domain.MaxAdSetsPerCampaign {
			return domain.Conflict(domain.CodeMaxAdSetsReached, map[string]any{
				"campaignId":     cmd.CampaignID,
				"adSetCount":     len(existing),
				"maximumAllowed": domain.MaxAdSetsPerCampaign,
			})
		}

		result, err = u.adSets.Create(ctx, cmd.CampaignID, cmd.Name, cmd.Budget)
		return err
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("ad set created",
		slog.String("adSetId", result.ID), slog.String("campaignId", result.CampaignID))
	return result, nil
}

// UpdateAdSet renames an ad set. An unchanged name is an idempotent
// no-op returning the current row without a version bump.
func (u *AdSetUseCase) UpdateAdSet(ctx context.Context, cmd port.UpdateAdSet) (*domain.AdSet, error) {
	var result *domain.AdSet
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		campaign, err := u.campaigns.Get(ctx, cmd.CampaignID, port.LockUpdate)
		if err != nil {
			return err
		}
		if campaign == nil {
			return domain.NotFound(domain.CodeCampaignNotFound, map[string]any{"campaignId": cmd.CampaignID})
		}
		if campaign.Version != cmd.Version {
			return versionMismatch(cmd.CampaignID, cmd.Version, campaign.Version)
		}

		adSet, err := u.adSets.Get(ctx, cmd.AdSetID, port.LockNone)
		if err != nil {
			return err
		}
		if adSet == nil {
			return domain.NotFound(domain.CodeAdSetNotFound, map[string]any{"adSetId": cmd.AdSetID})
		}
		if adSet.CampaignID != cmd.CampaignID {
			return adSetOwnershipMismatch(cmd.AdSetID, cmd.CampaignID)
		}
		if adSet.Name == cmd.Name {
			result = adSet
			return nil
		}

		result, err = u.adSets.Update(ctx, cmd.AdSetID, port.AdSetPatch{Name: &cmd.Name})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SwitchAdSetStatus transitions an ad set between Active and Paused.
// Switching to the current status is a successful no-op. Activation
// requires at least one Active ad and must keep the Active ad sets'
// summed budget within the campaign budget. Pausing the only Active ad
// set of an Active campaign is rejected.
func (u *AdSetUseCase) SwitchAdSetStatus(ctx context.Context, cmd port.SwitchAdSetStatus) (*domain.AdSet, error) {
	var result *domain.AdSet
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		campaign, err := u.campaigns.Get(ctx, cmd.CampaignID, port.LockUpdate)
		if err != nil {
			return err
		}
		// A Deleted campaign is invisible to descendant commands.
		if campaign == nil || campaign.Status == domain.StatusDeleted {
			return domain.NotFound(domain.CodeCampaignNotFound, map[string]any{"campaignId": cmd.CampaignID})
		}
		if campaign.Version != cmd.Version {
			return versionMismatch(cmd.CampaignID, cmd.Version, campaign.Version)
		}

		adSet, err := u.adSets.Get(ctx, cmd.AdSetID, port.LockUpdate)
		if err != nil {
			return err
		}
		if adSet == nil || adSet.Status == domain.StatusDeleted {
			return domain.NotFound(domain.CodeAdSetNotFound, map[string]any{"adSetId": cmd.AdSetID})
		}
		if adSet.CampaignID != cmd.CampaignID {
			return adSetOwnershipMismatch(cmd.AdSetID, cmd.CampaignID)
		}
		if adSet.Status == cmd.Status {
			result = adSet
			return nil
		}

		if cmd.Status == domain.StatusActive {
			ads, err := u.ads.ListByAdSet(ctx, cmd.AdSetID, port.LockNone)
			if err != nil {
				return err
			}
			if domain.CountActiveAds(ads, "") == 0 {
				return domain.Conflict(domain.CodeAdSetNoActiveAds, map[string]any{"adSetId": cmd.AdSetID})
			}

			adSets, err := u.adSets.ListByCampaign(ctx, cmd.CampaignID, port.LockNone)
			if err != nil {
				return err
			}
			total := domain.ActiveBudgetTotal(adSets)
			if total+adSet.Budget > campaign.Budget {
				return domain.Conflict(domain.CodeAdSetActivationExceedsBudget, map[string]any{
					"adSetId":                 cmd.AdSetID,
					"campaignId":              cmd.CampaignID,
					"campaignBudget":          campaign.Budget,
					"totalActiveAdSetsBudget": total,
					"adSetBudget":             adSet.Budget,
				})
			}
		}

		if campaign.Status == domain.StatusActive && cmd.Status == domain.StatusPaused {
			adSets, err := u.adSets.ListByCampaign(ctx, cmd.CampaignID, port.LockNone)
			if err != nil {
				return err
			}
			if domain.CountActive(adSets, adSet.ID) == 0 {
				return domain.Conflict(domain.CodeAdSetOnlyActiveInActiveCampaign, map[string]any{
					"adSetId":    cmd.AdSetID,
					"campaignId": cmd.CampaignID,
				})
			}
		}

		result, err = u.adSets.Update(ctx, cmd.AdSetID, port.AdSetPatch{Status: &cmd.Status})
		return err
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("ad set status switched",
		slog.String("adSetId", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

// DeleteAdSet switches an ad set to Deleted. Deleting the only Active ad
// set of an Active campaign is rejected; Deleted is terminal.
func (u *AdSetUseCase) DeleteAdSet(ctx context.Context, cmd port.DeleteAdSet) error {
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		campaign, err := u.campaigns.Get(ctx, cmd.CampaignID, port.LockUpdate)
		if err != nil {
			return err
		}
		if campaign == nil {
			return domain.NotFound(domain.CodeCampaignNotFound, map[string]any{"campaignId": cmd.CampaignID})
		}
		if campaign.Version != cmd.Version {
			return versionMismatch(cmd.CampaignID, cmd.Version, campaign.Version)
		}

		adSet, err := u.adSets.Get(ctx, cmd.AdSetID, port.LockUpdate)
		if err != nil {
			return err
		}
		if adSet == nil {
			return domain.NotFound(domain.CodeAdSetNotFound, map[string]any{"adSetId": cmd.AdSetID})
		}
		if adSet.CampaignID != cmd.CampaignID {
			return adSetOwnershipMismatch(cmd.AdSetID, cmd.CampaignID)
		}
		if adSet.Status == domain.StatusDeleted {
			return domain.Conflict(domain.CodeAdSetAlreadyDeleted, map[string]any{"adSetId": cmd.AdSetID})
		}

		if campaign.Status == domain.StatusActive && adSet.Status == domain.StatusActive {
			adSets, err := u.adSets.ListByCampaign(ctx, cmd.CampaignID, port.LockNone)
			if err != nil {
				return err
			}
			if domain.CountActive(adSets, cmd.AdSetID) == 0 {
				return domain.Conflict(domain.CodeCannotDeleteOnlyActiveAdSet, map[string]any{
					"campaignId": cmd.CampaignID,
					"adSetId":    cmd.AdSetID,
				})
			}
		}

		deleted := domain.StatusDeleted
		_, err = u.adSets.Update(ctx, cmd.AdSetID, port.AdSetPatch{Status: &deleted})
		return err
	})
	if err != nil {
		return err
	}
	u.logger.Info("ad set deleted", slog.String("adSetId", cmd.AdSetID))
	return nil
}

// adSetOwnershipMismatch builds the conflict raised when an ad set does
// not belong to the stated campaign.
func adSetOwnershipMismatch(adSetID, campaignID string) error {
	return domain.Conflict(domain.CodeAdSetCampaignMismatch, map[string]any{
		"adSetId":    adSetID,
		"campaignId": campaignID,
	})
}
