package domain

import "time"

// Limits on the size of a campaign subtree. The ad set cap applies both
// when creating an ad set and when activating a campaign, so the two
// checks can never disagree.
const (
	MaxAdSetsPerCampaign = 3
	MaxAdsPerAdSet       = 5
)

// Campaign is the top-level advertising budget container. Budget is an
// integer amount in minor currency units (e.g. cents).
//
// Version is the optimistic concurrency token for the whole subtree: it
// increments on every committed write to the campaign itself or to any of
// its ad sets or ads. Callers supply the version they read and a mismatch
// rejects the command.
type Campaign struct {
	ID        string
	Name      string
	Budget    int64
	Status    Status
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdSet is a budget-bearing grouping of ads under a campaign. CampaignID
// is immutable after creation.
type AdSet struct {
	ID         string
	CampaignID string
	Name       string
	Budget     int64
	Status     Status
}

// Ad is the leaf creative unit under an ad set. AdSetID is immutable
// after creation.
type Ad struct {
	ID       string
	AdSetID  string
	Name     string
	Content  string
	Creative string
	Status   Status
}

// ActiveBudgetTotal sums the budgets of the Active ad sets in the slice.
// Sums are exact integer arithmetic; the input is expected to come from
// rows read inside the calling transaction, never from a cached value.
func ActiveBudgetTotal(adSets []AdSet) int64 {
	var total int64
	for _, as := range adSets {
		if as.Status == StatusActive {
			total += as.Budget
		}
	}
	return total
}

// CountActive returns the number of Active ad sets, skipping the one with
// the given id. Pass an empty excludeID to count all of them.
func CountActive(adSets []AdSet, excludeID string) int {
	n := 0
	for _, as := range adSets {
		if as.ID != excludeID && as.Status == StatusActive {
			n++
		}
	}
	return n
}

// CountActiveAds returns the number of Active ads, skipping the one with
// the given id. Pass an empty excludeID to count all of them.
func CountActiveAds(ads []Ad, excludeID string) int {
	n := 0
	for _, a := range ads {
		if a.ID != excludeID && a.Status == StatusActive {
			n++
		}
	}
	return n
}

// AdSetTree is an ad set with its non-deleted ads, as returned by the
// read projections.
type AdSetTree struct {
	AdSet
	Ads []Ad
}

// CampaignTree is a campaign with its nested non-deleted ad sets and ads.
type CampaignTree struct {
	Campaign
	AdSets []AdSetTree
}

// CampaignPage is one page of the campaign list projection. Count is the
// total number of campaign rows by id, including Deleted ones, independent
// of the Deleted filter applied to List.
type CampaignPage struct {
	List  []CampaignTree
	Count int64
}
