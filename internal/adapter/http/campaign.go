package httpadapter

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

const defaultPageSize = 100

type createCampaignRequest struct {
	Name   string `json:"name"`
	Budget int64  `json:"budget"`
}

type updateCampaignRequest struct {
	Name    string `json:"name"`
	Version int64  `json:"version"`
}

type switchStatusRequest struct {
	Status  domain.Status `json:"status"`
	Version int64         `json:"version"`
}

type adjustBudgetRequest struct {
	AdjustAmount int64 `json:"adjustAmount"`
	Version      int64 `json:"version"`
}

// handleListCampaigns returns one page of campaign subtrees. Optional
// `take` and `skip` query parameters control pagination.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	take, skip := defaultPageSize, 0
	if v := r.URL.Query().Get("take"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "invalid 'take' parameter", http.StatusBadRequest)
			return
		}
		take = n
	}
	if v := r.URL.Query().Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid 'skip' parameter", http.StatusBadRequest)
			return
		}
		skip = n
	}

	page, err := h.queries.FindAllCampaigns(r.Context(), take, skip)
	if err != nil {
		h.respondError(w, err)
		return
	}
	resp := campaignPageResponse{List: make([]campaignTreeResponse, len(page.List)), Count: page.Count}
	for i := range page.List {
		resp.List[i] = toCampaignTreeResponse(&page.List[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// handleGetCampaign returns one campaign with its nested ad sets and ads.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	tree, err := h.queries.FindCampaignByID(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toCampaignTreeResponse(tree))
}

// handleCreateCampaign creates a campaign. The name must be non-empty
// and the budget non-negative.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Budget < 0 {
		http.Error(w, "name must be non-empty and budget non-negative", http.StatusBadRequest)
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.CreateCampaign{Name: req.Name, Budget: req.Budget})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toCampaignResponse(result.(*domain.Campaign)))
}

// handleUpdateCampaign renames a campaign.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req updateCampaignRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, "name must be non-empty", http.StatusBadRequest)
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.UpdateCampaign{
		ID:      chi.URLParam(r, "campaignID"),
		Name:    req.Name,
		Version: req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toCampaignResponse(result.(*domain.Campaign)))
}

// handleSwitchCampaignStatus switches a campaign between Active and
// Paused.
func (h *Handler) handleSwitchCampaignStatus(w http.ResponseWriter, r *http.Request) {
	var req switchStatusRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if !req.Status.Switchable() {
		http.Error(w, "status must be Active or Paused", http.StatusBadRequest)
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.SwitchCampaignStatus{
		ID:      chi.URLParam(r, "campaignID"),
		Status:  req.Status,
		Version: req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toCampaignResponse(result.(*domain.Campaign)))
}

// handleAdjustCampaignBudget applies a signed delta to the campaign
// budget.
func (h *Handler) handleAdjustCampaignBudget(w http.ResponseWriter, r *http.Request) {
	var req adjustBudgetRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.AdjustCampaignBudget{
		ID:           chi.URLParam(r, "campaignID"),
		AdjustAmount: req.AdjustAmount,
		Version:      req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toCampaignResponse(result.(*domain.Campaign)))
}
