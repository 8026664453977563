package port

import (
	"context"
	"errors"

	"mesa-campaigns/internal/core/domain"
)

// ErrLockNotAvailable is returned by store reads requesting a non-waiting
// row lock when the row is already locked by a concurrent transaction.
// Handlers translate it into a locked conflict; it is never retried
// internally.
var ErrLockNotAvailable = errors.New("row lock not available")

// LockMode selects the row-lock strength for store reads. LockUpdate
// blocks until the lock is granted; LockUpdateNoWait fails immediately
// with ErrLockNotAvailable when the row is contended.
type LockMode int

const (
	LockNone LockMode = iota
	LockUpdate
	LockUpdateNoWait
)

// CampaignPatch is a partial campaign update. Nil fields are left
// untouched.
type CampaignPatch struct {
	Name   *string
	Budget *int64
	Status *domain.Status
}

// AdSetPatch is a partial ad set update.
type AdSetPatch struct {
	Name   *string
	Status *domain.Status
}

// AdPatch is a partial ad update.
type AdPatch struct {
	Name     *string
	Content  *string
	Creative *string
	Status   *domain.Status
}

// CampaignStore persists campaigns. All methods observe a transaction
// carried in the context by TxManager so multiple calls compose
// atomically. Get returns (nil, nil) when no row matches.
type CampaignStore interface {
	Get(ctx context.Context, id string, lock LockMode) (*domain.Campaign, error)
	// Create inserts a campaign with status Paused and version 1.
	Create(ctx context.Context, name string, budget int64) (*domain.Campaign, error)
	// Update applies the patch and bumps version and updatedAt in one
	// statement, guarded by expectedVersion. It returns (nil, nil) when
	// no row carries the expected version anymore.
	Update(ctx context.Context, id string, expectedVersion int64, patch CampaignPatch) (*domain.Campaign, error)
}

// AdSetStore persists ad sets. Every write also bumps the owning
// campaign's version and updatedAt in the same transaction; callers must
// assume the campaign version changes even when they did not touch the
// campaign row directly.
type AdSetStore interface {
	Get(ctx context.Context, id string, lock LockMode) (*domain.AdSet, error)
	// ListByCampaign returns the campaign's ad sets excluding Deleted ones.
	ListByCampaign(ctx context.Context, campaignID string, lock LockMode) ([]domain.AdSet, error)
	// Create inserts an ad set with status Paused.
	Create(ctx context.Context, campaignID, name string, budget int64) (*domain.AdSet, error)
	Update(ctx context.Context, id string, patch AdSetPatch) (*domain.AdSet, error)
}

// AdStore persists ads. Writes bump the owning campaign's version the
// same way AdSetStore writes do.
type AdStore interface {
	Get(ctx context.Context, id string, lock LockMode) (*domain.Ad, error)
	// ListByAdSet returns the ad set's ads excluding Deleted ones.
	ListByAdSet(ctx context.Context, adSetID string, lock LockMode) ([]domain.Ad, error)
	// Create inserts an ad with status Paused.
	Create(ctx context.Context, adSetID, name, content, creative string) (*domain.Ad, error)
	Update(ctx context.Context, id string, patch AdPatch) (*domain.Ad, error)
}

// TxManager runs fn inside one database transaction. The transaction
// handle travels in the context passed to fn; store calls made with that
// context join the transaction. Any error from fn rolls everything back,
// so a validation failure can never leave partial writes behind.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CampaignProjections reads campaigns with their nested subtrees for the
// list and detail views. FindByID returns (nil, nil) when the campaign is
// missing or Deleted.
type CampaignProjections interface {
	FindAll(ctx context.Context, take, skip int) (*domain.CampaignPage, error)
	FindByID(ctx context.Context, id string) (*domain.CampaignTree, error)
}
