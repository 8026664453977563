package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

type createAdRequest struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Creative string `json:"creative"`
	Version  int64  `json:"version"`
}

type updateAdRequest struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Creative string `json:"creative"`
	Version  int64  `json:"version"`
}

// handleCreateAd creates an ad under the ad set.
func (h *Handler) handleCreateAd(w http.ResponseWriter, r *http.Request) {
	var req createAdRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, "name must be non-empty", http.StatusBadRequest)
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.CreateAd{
		CampaignID: chi.URLParam(r, "campaignID"),
		AdSetID:    chi.URLParam(r, "adSetID"),
		Name:       req.Name,
		Content:    req.Content,
		Creative:   req.Creative,
		Version:    req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toAdResponse(result.(*domain.Ad)))
}

// handleUpdateAd replaces the ad's name, content and creative.
func (h *Handler) handleUpdateAd(w http.ResponseWriter, r *http.Request) {
	var req updateAdRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, "name must be non-empty", http.StatusBadRequest)
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.UpdateAd{
		CampaignID: chi.URLParam(r, "campaignID"),
		AdSetID:    chi.URLParam(r, "adSetID"),
		AdID:       chi.URLParam(r, "adID"),
		Name:       req.Name,
		Content:    req.Content,
		Creative:   req.Creative,
		Version:    req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toAdResponse(result.(*domain.Ad)))
}

// handleSwitchAdStatus switches an ad between Active and Paused.
func (h *Handler) handleSwitchAdStatus(w http.ResponseWriter, r *http.Request) {
	var req switchStatusRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if !req.Status.Switchable() {
		http.Error(w, "status must be Active or Paused", http.StatusBadRequest)
		return
	}
	result, err := h.dispatcher.Dispatch(r.Context(), port.SwitchAdStatus{
		CampaignID: chi.URLParam(r, "campaignID"),
		AdSetID:    chi.URLParam(r, "adSetID"),
		AdID:       chi.URLParam(r, "adID"),
		Status:     req.Status,
		Version:    req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toAdResponse(result.(*domain.Ad)))
}

// handleDeleteAd switches an ad to Deleted.
func (h *Handler) handleDeleteAd(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	_, err := h.dispatcher.Dispatch(r.Context(), port.DeleteAd{
		CampaignID: chi.URLParam(r, "campaignID"),
		AdSetID:    chi.URLParam(r, "adSetID"),
		AdID:       chi.URLParam(r, "adID"),
		Version:    req.Version,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
