package port

import "mesa-campaigns/internal/core/domain"

// Command is the sealed union of mutation commands. Each command is an
// immutable value carrying exactly the identifiers and fields one
// operation needs, including the caller-supplied concurrency Version
// where optimistic locking applies. The dispatcher maps each command
// kind to exactly one handler.
type Command interface {
	isCommand()
}

type CreateCampaign struct {
	Name   string
	Budget int64
}

type UpdateCampaign struct {
	ID      string
	Name    string
	Version int64
}

type SwitchCampaignStatus struct {
	ID      string
	Status  domain.Status
	Version int64
}

type AdjustCampaignBudget struct {
	ID           string
	AdjustAmount int64
	Version      int64
}

type CreateAdSet struct {
	CampaignID string
	Name       string
	Budget     int64
}

type UpdateAdSet struct {
	CampaignID string
	AdSetID    string
	Name       string
	Version    int64
}

type SwitchAdSetStatus struct {
	CampaignID string
	AdSetID    string
	Status     domain.Status
	Version    int64
}

type DeleteAdSet struct {
	CampaignID string
	AdSetID    string
	Version    int64
}

type CreateAd struct {
	CampaignID string
	AdSetID    string
	Name       string
	Content    string
	Creative   string
	Version    int64
}

type UpdateAd struct {
	CampaignID string
	AdSetID    string
	AdID       string
	Name       string
	Content    string
	Creative   string
	Version    int64
}

type SwitchAdStatus struct {
	CampaignID string
	AdSetID    string
	AdID       string
	Status     domain.Status
	Version    int64
}

type DeleteAd struct {
	CampaignID string
	AdSetID    string
	AdID       string
	Version    int64
}

func (CreateCampaign) isCommand()       {}
func (UpdateCampaign) isCommand()       {}
func (SwitchCampaignStatus) isCommand() {}
func (AdjustCampaignBudget) isCommand() {}
func (CreateAdSet) isCommand()          {}
func (UpdateAdSet) isCommand()          {}
func (SwitchAdSetStatus) isCommand()    {}
func (DeleteAdSet) isCommand()          {}
func (CreateAd) isCommand()             {}
func (UpdateAd) isCommand()             {}
func (SwitchAdStatus) isCommand()       {}
func (DeleteAd) isCommand()             {}
