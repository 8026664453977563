package usecase

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/core/domain"
)

// fixture bundles the in-memory stores with fully wired handlers.
type fixture struct {
	db        *memDB
	campaigns *CampaignUseCase
	adSets    *AdSetUseCase
	ads       *AdUseCase
}

func newFixture() *fixture {
	db := newMemDB()
	txm := &memTxManager{db: db}
	campaignStore := &memCampaignStore{db: db}
	adSetStore := &memAdSetStore{db: db}
	adStore := &memAdStore{db: db}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		db:        db,
		campaigns: NewCampaignUseCase(txm, campaignStore, adSetStore, logger),
		adSets:    NewAdSetUseCase(txm, campaignStore, adSetStore, adStore, logger),
		ads:       NewAdUseCase(txm, campaignStore, adSetStore, adStore, logger),
	}
}

// seedCampaign inserts a campaign directly, bypassing the handlers, with
// version 1.
func (f *fixture) seedCampaign(name string, budget int64, status domain.Status) domain.Campaign {
	now := time.Now()
	return f.db.putCampaign(domain.Campaign{
		Name:      name,
		Budget:    budget,
		Status:    status,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (f *fixture) seedAdSet(campaignID, name string, budget int64, status domain.Status) domain.AdSet {
	return f.db.putAdSet(domain.AdSet{
		CampaignID: campaignID,
		Name:       name,
		Budget:     budget,
		Status:     status,
	})
}

func (f *fixture) seedAd(adSetID, name string, status domain.Status) domain.Ad {
	return f.db.putAd(domain.Ad{
		AdSetID:  adSetID,
		Name:     name,
		Content:  "content",
		Creative: "https://cdn.example.com/creative.png",
		Status:   status,
	})
}

func (f *fixture) campaignVersion(t *testing.T, id string) int64 {
	t.Helper()
	c, ok := f.db.campaigns[id]
	require.True(t, ok, "campaign %s not found", id)
	return c.Version
}

func requireConflict(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, domain.IsConflict(err), "expected conflict, got %v", err)
	require.True(t, domain.IsCode(err, code), "expected code %s, got %v", code, err)
}

func requireNotFound(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, domain.IsNotFound(err), "expected not-found, got %v", err)
	require.True(t, domain.IsCode(err, code), "expected code %s, got %v", code, err)
}
