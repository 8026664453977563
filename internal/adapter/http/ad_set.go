package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

type createAdSetRequest struct {
	Name   string `json:"name"`
	Budget int64  `json:"budget"`
}

type updateAdSetRequest struct {
	Name    string `json:"name"`
	Version int64  `json:"version"`
}

type deleteRequest struct {
	Version int64 `json:"version"`
}

// handleCreateAdSet creates an ad set under the campaign.
func (h *Handler) handleCreateAdSet(w http.ResponseWriter, r *http.Request) {
	var req createAdSetRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Budget < 0 {
		http.Error(w, "name must be non-empty and budget non-negative", http.StatusBadRequest)
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.CreateAdSet{
		CampaignID: chi.URLParam(r, "campaignID"),
		Name:       req.Name,
		Budget:     req.Budget,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toAdSetResponse(result.(*domain.AdSet)))
}

// handleUpdateAdSet renames an ad set.
func (h *Handler) handleUpdateAdSet(w http.ResponseWriter, r *http.Request) {
	var req updateAdSetRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, "name must be non-empty", http.StatusBadRequest)
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.UpdateAdSet{
		CampaignID: chi.URLParam(r, "campaignID"),
		AdSetID:    chi.URLParam(r, "adSetID"),
		Name:       req.Name,
		Version:    req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toAdSetResponse(result.(*domain.AdSet)))
}

// handleSwitchAdSetStatus switches an ad set between Active and Paused.
func (h *Handler) handleSwitchAdSetStatus(w http.ResponseWriter, r *http.Request) {
	var req switchStatusRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if !req.Status.Switchable() {
		http.Error(w, "status must be Active or Paused", http.StatusBadRequest)
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.SwitchAdSetStatus{
		CampaignID: chi.URLParam(r, "campaignID"),
		AdSetID:    chi.URLParam(r, "adSetID"),
		Status:     req.Status,
		Version:    req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toAdSetResponse(result.(*domain.AdSet)))
}

// handleDeleteAdSet switches an ad set to Deleted.
func (h *Handler) handleDeleteAdSet(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	_, err := h.dispatcher.Dispatch(r.Context(), port.DeleteAdSet{
		CampaignID: chi.URLParam(r, "campaignID"),
		AdSetID:    chi.URLParam(r, "adSetID"),
		Version:    req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
