package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// memDB is an in-memory stand-in for the postgres stores. It honors the
// two behaviors the handlers depend on: every ad set or ad write bumps
// the owning campaign's version, and a campaign marked as locked fails
// non-waiting reads with port.ErrLockNotAvailable. The tx manager
// snapshots state so a failed handler rolls everything back, just like a
// real transaction.
type memDB struct {
	mu        sync.Mutex
	campaigns map[string]domain.Campaign
	adSets    map[string]domain.AdSet
	ads       map[string]domain.Ad
	locked    map[string]bool
}

func newMemDB() *memDB {
	return &memDB{
		campaigns: map[string]domain.Campaign{},
		adSets:    map[string]domain.AdSet{},
		ads:       map[string]domain.Ad{},
		locked:    map[string]bool{},
	}
}

func (db *memDB) putCampaign(c domain.Campaign) domain.Campaign {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Version == 0 {
		c.Version = 1
	}
	db.campaigns[c.ID] = c
	return c
}

func (db *memDB) putAdSet(as domain.AdSet) domain.AdSet {
	if as.ID == "" {
		as.ID = uuid.NewString()
	}
	db.adSets[as.ID] = as
	return as
}

func (db *memDB) putAd(a domain.Ad) domain.Ad {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	db.ads[a.ID] = a
	return a
}

func (db *memDB) bumpCampaign(id string) {
	if c, ok := db.campaigns[id]; ok {
		c.Version++
		c.UpdatedAt = time.Now()
		db.campaigns[id] = c
	}
}

type snapshot struct {
	campaigns map[string]domain.Campaign
	adSets    map[string]domain.AdSet
	ads       map[string]domain.Ad
}

func (db *memDB) snapshot() snapshot {
	s := snapshot{
		campaigns: make(map[string]domain.Campaign, len(db.campaigns)),
		adSets:    make(map[string]domain.AdSet, len(db.adSets)),
		ads:       make(map[string]domain.Ad, len(db.ads)),
	}
	for k, v := range db.campaigns {
		s.campaigns[k] = v
	}
	for k, v := range db.adSets {
		s.adSets[k] = v
	}
	for k, v := range db.ads {
		s.ads[k] = v
	}
	return s
}

func (db *memDB) restore(s snapshot) {
	db.campaigns = s.campaigns
	db.adSets = s.adSets
	db.ads = s.ads
}

// memTxManager rolls the whole memDB back when fn fails.
type memTxManager struct {
	db *memDB
}

func (m *memTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	snap := m.db.snapshot()
	if err := fn(ctx); err != nil {
		m.db.restore(snap)
		return err
	}
	return nil
}

type memCampaignStore struct {
	db *memDB
}

func (s *memCampaignStore) Get(_ context.Context, id string, lock port.LockMode) (*domain.Campaign, error) {
	if lock == port.LockUpdateNoWait && s.db.locked[id] {
		return nil, port.ErrLockNotAvailable
	}
	c, ok := s.db.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *memCampaignStore) Create(_ context.Context, name string, budget int64) (*domain.Campaign, error) {
	now := time.Now()
	c := s.db.putCampaign(domain.Campaign{
		Name:      name,
		Budget:    budget,
		Status:    domain.StatusPaused,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return &c, nil
}

func (s *memCampaignStore) Update(_ context.Context, id string, expectedVersion int64, patch port.CampaignPatch) (*domain.Campaign, error) {
	c, ok := s.db.campaigns[id]
	if !ok || c.Version != expectedVersion {
		return nil, nil
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Budget != nil {
		c.Budget = *patch.Budget
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	c.Version++
	c.UpdatedAt = time.Now()
	s.db.campaigns[id] = c
	return &c, nil
}

type memAdSetStore struct {
	db *memDB
}

func (s *memAdSetStore) Get(_ context.Context, id string, _ port.LockMode) (*domain.AdSet, error) {
	as, ok := s.db.adSets[id]
	if !ok {
		return nil, nil
	}
	return &as, nil
}

func (s *memAdSetStore) ListByCampaign(_ context.Context, campaignID string, _ port.LockMode) ([]domain.AdSet, error) {
	var out []domain.AdSet
	for _, as := range s.db.adSets {
		if as.CampaignID == campaignID && as.Status != domain.StatusDeleted {
			out = append(out, as)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memAdSetStore) Create(_ context.Context, campaignID, name string, budget int64) (*domain.AdSet, error) {
	as := s.db.putAdSet(domain.AdSet{
		CampaignID: campaignID,
		Name:       name,
		Budget:     budget,
		Status:     domain.StatusPaused,
	})
	s.db.bumpCampaign(campaignID)
	return &as, nil
}

func (s *memAdSetStore) Update(_ context.Context, id string, patch port.AdSetPatch) (*domain.AdSet, error) {
	as, ok := s.db.adSets[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		as.Name = *patch.Name
	}
	if patch.Status != nil {
		as.Status = *patch.Status
	}
	s.db.adSets[id] = as
	s.db.bumpCampaign(as.CampaignID)
	return &as, nil
}

type memAdStore struct {
	db *memDB
}

func (s *memAdStore) Get(_ context.Context, id string, _ port.LockMode) (*domain.Ad, error) {
	a, ok := s.db.ads[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *memAdStore) ListByAdSet(_ context.Context, adSetID string, _ port.LockMode) ([]domain.Ad, error) {
	var out []domain.Ad
	for _, a := range s.db.ads {
		if a.AdSetID == adSetID && a.Status != domain.StatusDeleted {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memAdStore) Create(_ context.Context, adSetID, name, content, creative string) (*domain.Ad, error) {
	a := s.db.putAd(domain.Ad{
		AdSetID:  adSetID,
		Name:     name,
		Content:  content,
		Creative: creative,
		Status:   domain.StatusPaused,
	})
	if as, ok := s.db.adSets[adSetID]; ok {
		s.db.bumpCampaign(as.CampaignID)
	}
	return &a, nil
}

func (s *memAdStore) Update(_ context.Context, id string, patch port.AdPatch) (*domain.Ad, error) {
	a, ok := s.db.ads[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.Creative != nil {
		a.Creative = *patch.Creative
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	s.db.ads[id] = a
	if as, ok := s.db.adSets[a.AdSetID]; ok {
		s.db.bumpCampaign(as.CampaignID)
	}
	return &a, nil
}
