package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

func TestCreateAd(t *testing.T) {
	ctx := context.Background()

	t.Run("new ad starts paused and bumps campaign version", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)

		ad, err := f.ads.CreateAd(ctx, port.CreateAd{
			CampaignID: c.ID, AdSetID: as.ID,
			Name: "Ad", Content: "content", Creative: "https://cdn.example.com/a.png",
			Version: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, as.ID, ad.AdSetID)
		assert.Equal(t, domain.StatusPaused, ad.Status)
		assert.Equal(t, int64(2), f.campaignVersion(t, c.ID))
	})

	t.Run("capacity reached", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)
		for i := 0; i < domain.MaxAdsPerAdSet; i++ {
			f.seedAd(as.ID, "Ad", domain.StatusPaused)
		}

		_, err := f.ads.CreateAd(ctx, port.CreateAd{
			CampaignID: c.ID, AdSetID: as.ID,
			Name: "overflow", Content: "c", Creative: "x",
			Version: 1,
		})
		requireConflict(t, err, domain.CodeMaxAdsReached)
	})

	t.Run("deleted campaign", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusDeleted)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)

		_, err := f.ads.CreateAd(ctx, port.CreateAd{
			CampaignID: c.ID, AdSetID: as.ID,
			Name: "Ad", Content: "c", Creative: "x",
			Version: 1,
		})
		requireConflict(t, err, domain.CodeCampaignDeleted)
	})

	t.Run("deleted ad set", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusDeleted)

		_, err := f.ads.CreateAd(ctx, port.CreateAd{
			CampaignID: c.ID, AdSetID: as.ID,
			Name: "Ad", Content: "c", Creative: "x",
			Version: 1,
		})
		requireConflict(t, err, domain.CodeAdSetDeleted)
	})

	t.Run("version mismatch", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)

		_, err := f.ads.CreateAd(ctx, port.CreateAd{
			CampaignID: c.ID, AdSetID: as.ID,
			Name: "Ad", Content: "c", Creative: "x",
			Version: 5,
		})
		requireConflict(t, err, domain.CodeCampaignVersionMismatch)
	})
}

func TestUpdateAd(t *testing.T) {
	ctx := context.Background()

	t.Run("update bumps campaign version", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)
		ad := f.seedAd(as.ID, "Old", domain.StatusPaused)

		updated, err := f.ads.UpdateAd(ctx, port.UpdateAd{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID,
			Name: "New", Content: "new content", Creative: "https://cdn.example.com/new.png",
			Version: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Name)
		assert.Equal(t, int64(2), f.campaignVersion(t, c.ID))
	})

	t.Run("unchanged fields are a no-op", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)
		ad := f.seedAd(as.ID, "Ad", domain.StatusPaused)

		_, err := f.ads.UpdateAd(ctx, port.UpdateAd{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID,
			Name: ad.Name, Content: ad.Content, Creative: ad.Creative,
			Version: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), f.campaignVersion(t, c.ID))
	})

	t.Run("ad in a different ad set", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as1 := f.seedAdSet(c.ID, "AS1", 300, domain.StatusPaused)
		as2 := f.seedAdSet(c.ID, "AS2", 300, domain.StatusPaused)
		ad := f.seedAd(as2.ID, "Ad", domain.StatusPaused)

		_, err := f.ads.UpdateAd(ctx, port.UpdateAd{
			CampaignID: c.ID, AdSetID: as1.ID, AdID: ad.ID,
			Name: "New", Content: "c", Creative: "x",
			Version: 1,
		})
		requireConflict(t, err, domain.CodeAdAdSetMismatch)
	})

	t.Run("deleted ad is terminal", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)
		ad := f.seedAd(as.ID, "Ad", domain.StatusDeleted)

		_, err := f.ads.UpdateAd(ctx, port.UpdateAd{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID,
			Name: "New", Content: "c", Creative: "x",
			Version: 1,
		})
		requireConflict(t, err, domain.CodeAdDeleted)
	})
}

func TestSwitchAdStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("same status is a successful no-op", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)
		ad := f.seedAd(as.ID, "Ad", domain.StatusPaused)

		updated, err := f.ads.SwitchAdStatus(ctx, port.SwitchAdStatus{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID,
			Status: domain.StatusPaused, Version: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaused, updated.Status)
		assert.Equal(t, int64(1), f.campaignVersion(t, c.ID))
	})

	t.Run("cannot pause the only active ad of an active ad set", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusActive)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusActive)
		ad := f.seedAd(as.ID, "Ad", domain.StatusActive)

		_, err := f.ads.SwitchAdStatus(ctx, port.SwitchAdStatus{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID,
			Status: domain.StatusPaused, Version: 1,
		})
		requireConflict(t, err, domain.CodeCannotPauseOnlyActiveAd)
	})

	t.Run("pausing succeeds with a second active ad", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusActive)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusActive)
		ad := f.seedAd(as.ID, "Ad1", domain.StatusActive)
		f.seedAd(as.ID, "Ad2", domain.StatusActive)

		updated, err := f.ads.SwitchAdStatus(ctx, port.SwitchAdStatus{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID,
			Status: domain.StatusPaused, Version: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaused, updated.Status)
		assert.Equal(t, int64(2), f.campaignVersion(t, c.ID))
	})

	t.Run("pausing in a paused ad set needs no sibling", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)
		ad := f.seedAd(as.ID, "Ad", domain.StatusActive)

		updated, err := f.ads.SwitchAdStatus(ctx, port.SwitchAdStatus{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID,
			Status: domain.StatusPaused, Version: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaused, updated.Status)
	})
}

func TestDeleteAd(t *testing.T) {
	ctx := context.Background()

	t.Run("delete marks deleted and bumps campaign version", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)
		ad := f.seedAd(as.ID, "Ad", domain.StatusPaused)

		err := f.ads.DeleteAd(ctx, port.DeleteAd{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID, Version: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDeleted, f.db.ads[ad.ID].Status)
		assert.Equal(t, int64(2), f.campaignVersion(t, c.ID))
	})

	t.Run("cannot delete the only active ad of an active ad set", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusActive)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusActive)
		ad := f.seedAd(as.ID, "Ad", domain.StatusActive)

		err := f.ads.DeleteAd(ctx, port.DeleteAd{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID, Version: 1,
		})
		requireConflict(t, err, domain.CodeCannotDeleteOnlyActiveAd)
		assert.Equal(t, domain.StatusActive, f.db.ads[ad.ID].Status)
	})

	t.Run("deleted ad rejects further commands", func(t *testing.T) {
		f := newFixture()
		c := f.seedCampaign("C", 1000, domain.StatusPaused)
		as := f.seedAdSet(c.ID, "AS", 300, domain.StatusPaused)
		ad := f.seedAd(as.ID, "Ad", domain.StatusDeleted)

		err := f.ads.DeleteAd(ctx, port.DeleteAd{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID, Version: 1,
		})
		requireConflict(t, err, domain.CodeAdDeleted)

		_, err = f.ads.SwitchAdStatus(ctx, port.SwitchAdStatus{
			CampaignID: c.ID, AdSetID: as.ID, AdID: ad.ID,
			Status: domain.StatusActive, Version: 1,
		})
		requireConflict(t, err, domain.CodeAdDeleted)
	})
}
