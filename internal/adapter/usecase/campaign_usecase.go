package usecase

import (
	"context"
	"errors"
	"log/slog"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// CampaignUseCase implements the campaign-level command handlers. Every
// handler runs inside one transaction; the campaign row is locked first
// and acts as the serialization point for its whole subtree.
//
// Top-level campaign mutations take the lock NOWAIT so a contended
// campaign fails fast with a locked conflict instead of queueing.
type CampaignUseCase struct {
	tx        port.TxManager
	campaigns port.CampaignStore
	adSets    port.AdSetStore
	logger    *slog.Logger
}

// NewCampaignUseCase wires the campaign handlers with their stores.
func NewCampaignUseCase(tx port.TxManager, campaigns port.CampaignStore, adSets port.AdSetStore, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{tx: tx, campaigns: campaigns, adSets: adSets, logger: logger}
}

// lockCampaignNoWait loads the campaign under a non-waiting exclusive
// lock and maps a contended row to the locked conflict.
func (u *CampaignUseCase) lockCampaignNoWait(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := u.campaigns.Get(ctx, id, port.LockUpdateNoWait)
	if errors.Is(err, port.ErrLockNotAvailable) {
		u.logger.Warn("campaign row contended", slog.String("campaignId", id))
		return nil, domain.Conflict(domain.CodeCampaignLocked, map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.NotFound(domain.CodeCampaignNotFound, map[string]any{"id": id})
	}
	return campaign, nil
}

// CreateCampaign inserts a new campaign. New campaigns start Paused with
// version 1; no invariants apply beyond field validation done upstream.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, cmd port.CreateCampaign) (*domain.Campaign, error) {
	campaign, err := u.campaigns.Create(ctx, cmd.Name, cmd.Budget)
	if err != nil {
		return nil, err
	}
	u.logger.Info("campaign created",
		slog.String("campaignId", campaign.ID), slog.Int64("budget", campaign.Budget))
	return campaign, nil
}

// UpdateCampaign renames a campaign. An unchanged name is an idempotent
// no-op returning the current row without a version bump.
func (u *CampaignUseCase) UpdateCampaign(ctx context.Context, cmd port.UpdateCampaign) (*domain.Campaign, error) {
	var result *domain.Campaign
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		campaign, err := u.lockCampaignNoWait(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if campaign.Status == domain.StatusDeleted {
			return domain.Conflict(domain.CodeCampaignDeleted, map[string]any{"id": cmd.ID})
		}
		if campaign.Version != cmd.Version {
			return versionMismatch(cmd.ID, cmd.Version, campaign.Version)
		}
		if campaign.Name == cmd.Name {
			result = campaign
			return nil
		}

		result, err = u.campaigns.Update(ctx, cmd.ID, campaign.Version, port.CampaignPatch{Name: &cmd.Name})
		if err != nil {
			return err
		}
		if result == nil {
			return domain.Conflict(domain.CodeCampaignVersionMismatchPostWrite, map[string]any{"id": cmd.ID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SwitchCampaignStatus transitions a campaign between Active and Paused.
// Requesting the current status is a conflict. Activation requires at
// most MaxAdSetsPerCampaign non-deleted ad sets, at least one Active ad
// set, and the Active ad sets' summed budget within the campaign budget.
func (u *CampaignUseCase) SwitchCampaignStatus(ctx context.Context, cmd port.SwitchCampaignStatus) (*domain.Campaign, error) {
	var result *domain.Campaign
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		campaign, err := u.lockCampaignNoWait(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if campaign.Status == domain.StatusDeleted {
			return domain.Conflict(domain.CodeCampaignDeleted, map[string]any{"id": cmd.ID})
		}
		if campaign.Version != cmd.Version {
			return versionMismatch(cmd.ID, cmd.Version, campaign.Version)
		}
		if campaign.Status == cmd.Status {
			return domain.Conflict(domain.CodeCampaignStatusUnchanged, map[string]any{
				"id":     cmd.ID,
				"status": cmd.Status,
			})
		}

		if cmd.Status == domain.StatusActive {
			adSets, err := u.adSets.ListByCampaign(ctx, cmd.ID, port.LockNone)
			if err != nil {
				return err
			}
			if len(adSets) > domain.MaxAdSetsPerCampaign {
				return domain.Conflict(domain.CodeAdSetLimitExceeded, map[string]any{
					"id":         cmd.ID,
					"adSetCount": len(adSets),
				})
			}
			if domain.CountActive(adSets, "") == 0 {
				return domain.Conflict(domain.CodeNoActiveAdSets, map[string]any{"id": cmd.ID})
			}
			if total := domain.ActiveBudgetTotal(adSets); total > campaign.Budget {
				return domain.Conflict(domain.CodeCampaignBudgetExceeded, map[string]any{
					"id":                cmd.ID,
					"campaignBudget":    campaign.Budget,
					"totalAdSetsBudget": total,
				})
			}
		}

		result, err = u.campaigns.Update(ctx, cmd.ID, campaign.Version, port.CampaignPatch{Status: &cmd.Status})
		if err != nil {
			return err
		}
		if result == nil {
			return domain.Conflict(domain.CodeCampaignVersionMismatchPostWrite, map[string]any{"id": cmd.ID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("campaign status switched",
		slog.String("campaignId", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

// AdjustCampaignBudget applies a signed delta to the campaign budget. On
// an Active campaign the adjusted budget must still cover the Active ad
// sets' summed budget.
func (u *CampaignUseCase) AdjustCampaignBudget(ctx context.Context, cmd port.AdjustCampaignBudget) (*domain.Campaign, error) {
	var result *domain.Campaign
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		campaign, err := u.lockCampaignNoWait(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if campaign.Status == domain.StatusDeleted {
			return domain.Conflict(domain.CodeCampaignDeleted, map[string]any{"id": cmd.ID})
		}
		if campaign.Version != cmd.Version {
			return versionMismatch(cmd.ID, cmd.Version, campaign.Version)
		}

		adjusted := campaign.Budget + cmd.AdjustAmount
		if campaign.Status == domain.StatusActive {
			adSets, err := u.adSets.ListByCampaign(ctx, cmd.ID, port.LockNone)
			if err != nil {
				return err
			}
			if total := domain.ActiveBudgetTotal(adSets); adjusted < total {
				return domain.Conflict(domain.CodeBudgetBelowActiveAdSetsTotal, map[string]any{
					"id":                         cmd.ID,
					"adjustedBudget":             adjusted,
					"totalBudgetForActiveAdSets": total,
				})
			}
		}

		result, err = u.campaigns.Update(ctx, cmd.ID, campaign.Version, port.CampaignPatch{Budget: &adjusted})
		if err != nil {
			return err
		}
		if result == nil {
			return domain.Conflict(domain.CodeCampaignVersionMismatchPostWrite, map[string]any{"id": cmd.ID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("campaign budget adjusted",
		slog.String("campaignId", result.ID), slog.Int64("budget", result.Budget))
	return result, nil
}

// versionMismatch builds the optimistic-concurrency conflict with both
// sides of the comparison.
func versionMismatch(campaignID string, expected, actual int64) error {
	return domain.Conflict(domain.CodeCampaignVersionMismatch, map[string]any{
		"campaignId":      campaignID,
		"expectedVersion": expected,
		"actualVersion":   actual,
	})
}
