package httpadapter

import (
	"time"

	"mesa-campaigns/internal/core/domain"
)

// Response DTOs. Plain data projections of the entity rows; the JSON
// field names mirror the public API contract.

type campaignResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Budget    int64         `json:"budget"`
	Status    domain.Status `json:"status"`
	Version   int64         `json:"version"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type adSetResponse struct {
	ID         string        `json:"id"`
	CampaignID string        `json:"campaignId"`
	Name       string        `json:"name"`
	Budget     int64         `json:"budget"`
	Status     domain.Status `json:"status"`
}

type adResponse struct {
	ID       string        `json:"id"`
	AdSetID  string        `json:"adSetId"`
	Name     string        `json:"name"`
	Content  string        `json:"content"`
	Creative string        `json:"creative"`
	Status   domain.Status `json:"status"`
}

type adSetTreeResponse struct {
	adSetResponse
	Ads []adResponse `json:"ads"`
}

type campaignTreeResponse struct {
	campaignResponse
	AdSets []adSetTreeResponse `json:"adSets"`
}

type campaignPageResponse struct {
	List  []campaignTreeResponse `json:"list"`
	Count int64                  `json:"count"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:        c.ID,
		Name:      c.Name,
		Budget:    c.Budget,
		Status:    c.Status,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toAdSetResponse(as *domain.AdSet) adSetResponse {
	return adSetResponse{
		ID:         as.ID,
		CampaignID: as.CampaignID,
		Name:       as.Name,
		Budget:     as.Budget,
		Status:     as.Status,
	}
}

func toAdResponse(a *domain.Ad) adResponse {
	return adResponse{
		ID:       a.ID,
		AdSetID:  a.AdSetID,
		Name:     a.Name,
		Content:  a.Content,
		Creative: a.Creative,
		Status:   a.Status,
	}
}

func toCampaignTreeResponse(t *domain.CampaignTree) campaignTreeResponse {
	adSets := make([]adSetTreeResponse, len(t.AdSets))
	for i := range t.AdSets {
		ads := make([]adResponse, len(t.AdSets[i].Ads))
		for j := range t.AdSets[i].Ads {
			ads[j] = toAdResponse(&t.AdSets[i].Ads[j])
		}
		adSets[i] = adSetTreeResponse{
			adSetResponse: toAdSetResponse(&t.AdSets[i].AdSet),
			Ads:           ads,
		}
	}
	return campaignTreeResponse{
		campaignResponse: toCampaignResponse(&t.Campaign),
		AdSets:           adSets,
	}
}
