package usecase

import (
	"context"
	"log/slog"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// AdUseCase implements the ad command handlers. Each handler validates
// the full ancestor chain (campaign, then ad set, then ad) before
// touching the ad row.
type AdUseCase struct {
	tx        port.TxManager
	campaigns port.CampaignStore
	adSets    port.AdSetStore
	ads       port.AdStore
	logger    *slog.Logger
}

// NewAdUseCase wires the ad handlers with their stores.
func NewAdUseCase(tx port.TxManager, campaigns port.CampaignStore, adSets port.AdSetStore, ads port.AdStore, logger *slog.Logger) *AdUseCase {
	return &AdUseCase{tx: tx, campaigns: campaigns, adSets: adSets, ads: ads, logger: logger}
}

// loadAncestors locks and validates the campaign and ad set for an ad
// command: existence, terminal state, version match and ownership.
func (u *AdUseCase) loadAncestors(ctx context.Context, campaignID, adSetID string, version int64) (*domain.Campaign, *domain.AdSet, error) {
	campaign, err := u.campaigns.Get(ctx, campaignID, port.LockUpdate)
	if err != nil {
		return nil, nil, err
	}
	if campaign == nil {
		return nil, nil, domain.NotFound(domain.CodeCampaignNotFound, map[string]any{"campaignId": campaignID})
	}
	if campaign.Status == domain.StatusDeleted {
		return nil, nil, domain.Conflict(domain.CodeCampaignDeleted, map[string]any{"campaignId": campaignID})
	}
	if campaign.Version != version {
		return nil, nil, versionMismatch(campaignID, version, campaign.Version)
	}

	adSet, err := u.adSets.Get(ctx, adSetID, port.LockUpdate)
	if err != nil {
		return nil, nil, err
	}
	if adSet == nil {
		return nil, nil, domain.NotFound(domain.CodeAdSetNotFound, map[string]any{"adSetId": adSetID})
	}
	if adSet.Status == domain.StatusDeleted {
		return nil, nil, domain.Conflict(domain.CodeAdSetDeleted, map[string]any{"adSetId": adSetID})
	}
	if adSet.CampaignID != campaignID {
		return nil, nil, adSetOwnershipMismatch(adSetID, campaignID)
	}
	return campaign, adSet, nil
}

// loadAd fetches and validates the ad itself: existence, ownership and
// terminal state.
func (u *AdUseCase) loadAd(ctx context.Context, adID, adSetID string) (*domain.Ad, error) {
	ad, err := u.ads.Get(ctx, adID, port.LockUpdate)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, domain.NotFound(domain.CodeAdNotFound, map[string]any{"adId": adID})
	}
	if ad.Status == domain.StatusDeleted {
		return nil, domain.Conflict(domain.CodeAdDeleted, map[string]any{"adId": adID})
	}
	if ad.AdSetID != adSetID {
		return nil, domain.Conflict(domain.CodeAdAdSetMismatch, map[string]any{
			"adId":    adID,
			"adSetId": adSetID,
		})
	}
	return ad, nil
}

// CreateAd inserts a new ad under the ad set, capped at MaxAdsPerAdSet
// non-deleted ads. The new ad starts Paused.
func (u *AdUseCase) CreateAd(ctx context.Context, cmd port.CreateAd) (*domain.Ad, error) {
	var result *domain.Ad
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, _, err := u.loadAncestors(ctx, cmd.CampaignID, cmd.AdSetID, cmd.Version)
		if err != nil {
			return err
		}

		existing, err := u.ads.ListByAdSet(ctx, cmd.AdSetID, port.LockUpdate)
		if err != nil {
			return err
		}
		if len(existing) >= domain.MaxAdsPerAdSet {
			return domain.Conflict(domain.CodeMaxAdsReached, map[string]any{
				"adSetId":        cmd.AdSetID,
				"adCount":        len(existing),
				"maximumAllowed": domain.MaxAdsPerAdSet,
			})
		}

		result, err = u.ads.Create(ctx, cmd.AdSetID, cmd.Name, cmd.Content, cmd.Creative)
		return err
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("ad created",
		slog.String("adId", result.ID), slog.String("adSetId", result.AdSetID))
	return result, nil
}

// UpdateAd replaces the ad's name, content and creative. A request
// leaving all three unchanged is an idempotent no-op without a version
// bump.
func (u *AdUseCase) UpdateAd(ctx context.Context, cmd port.UpdateAd) (*domain.Ad, error) {
	var result *domain.Ad
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, _, err := u.loadAncestors(ctx, cmd.CampaignID, cmd.AdSetID, cmd.Version)
		if err != nil {
			return err
		}
		ad, err := u.loadAd(ctx, cmd.AdID, cmd.AdSetID)
		if err != nil {
			return err
		}
		if ad.Name == cmd.Name && ad.Content == cmd.Content && ad.Creative == cmd.Creative {
			result = ad
			return nil
		}

		result, err = u.ads.Update(ctx, cmd.AdID, port.AdPatch{
			Name:     &cmd.Name,
			Content:  &cmd.Content,
			Creative: &cmd.Creative,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SwitchAdStatus transitions an ad between Active and Paused. Switching
// to the current status is a successful no-op. Pausing the only Active
// ad of an Active ad set is rejected.
func (u *AdUseCase) SwitchAdStatus(ctx context.Context, cmd port.SwitchAdStatus) (*domain.Ad, error) {
	var result *domain.Ad
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, adSet, err := u.loadAncestors(ctx, cmd.CampaignID, cmd.AdSetID, cmd.Version)
		if err != nil {
			return err
		}
		ad, err := u.loadAd(ctx, cmd.AdID, cmd.AdSetID)
		if err != nil {
			return err
		}
		if ad.Status == cmd.Status {
			result = ad
			return nil
		}

		if cmd.Status == domain.StatusPaused && adSet.Status == domain.StatusActive {
			ads, err := u.ads.ListByAdSet(ctx, cmd.AdSetID, port.LockNone)
			if err != nil {
				return err
			}
			if domain.CountActiveAds(ads, cmd.AdID) == 0 {
				return domain.Conflict(domain.CodeCannotPauseOnlyActiveAd, map[string]any{
					"adId":    cmd.AdID,
					"adSetId": cmd.AdSetID,
				})
			}
		}

		result, err = u.ads.Update(ctx, cmd.AdID, port.AdPatch{Status: &cmd.Status})
		return err
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("ad status switched",
		slog.String("adId", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

// DeleteAd switches an ad to Deleted. Deleting the only Active ad of an
// Active ad set is rejected; Deleted is terminal.
func (u *AdUseCase) DeleteAd(ctx context.Context, cmd port.DeleteAd) error {
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, adSet, err := u.loadAncestors(ctx, cmd.CampaignID, cmd.AdSetID, cmd.Version)
		if err != nil {
			return err
		}
		ad, err := u.loadAd(ctx, cmd.AdID, cmd.AdSetID)
		if err != nil {
			return err
		}

		if adSet.Status == domain.StatusActive && ad.Status == domain.StatusActive {
			ads, err := u.ads.ListByAdSet(ctx, cmd.AdSetID, port.LockUpdate)
			if err != nil {
				return err
			}
			if domain.CountActiveAds(ads, cmd.AdID) == 0 {
				return domain.Conflict(domain.CodeCannotDeleteOnlyActiveAd, map[string]any{
					"adId":    cmd.AdID,
					"adSetId": cmd.AdSetID,
				})
			}
		}

		deleted := domain.StatusDeleted
		_, err = u.ads.Update(ctx, cmd.AdID, port.AdPatch{Status: &deleted})
		return err
	})
	if err != nil {
		return err
	}
	u.logger.Info("ad deleted", slog.String("adId", cmd.AdID))
	return nil
}
