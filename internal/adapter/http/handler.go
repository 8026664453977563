package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mesa-campaigns/internal/core/port"
)

// Handler is the inbound HTTP adapter. It parses requests into commands,
// runs them through the dispatcher, and maps domain errors onto HTTP
// status codes. Reads go through the query port.
type Handler struct {
	dispatcher Dispatcher
	queries    port.CampaignQueries
	logger     *slog.Logger
	router     chi.Router
}

// Dispatcher executes one command and returns the resulting projection.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd port.Command) (any, error)
}

// NewHandler creates a handler with all routes configured.
func NewHandler(dispatcher Dispatcher, queries port.CampaignQueries, logger *slog.Logger) *Handler {
	h := &Handler{dispatcher: dispatcher, queries: queries, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1/campaigns", func(r chi.Router) {
		r.Get("/", h.handleListCampaigns)
		r.Post("/", h.handleCreateCampaign)

		r.Route("/{campaignID}", func(r chi.Router) {
			r.Get("/", h.handleGetCampaign)
			r.Patch("/", h.handleUpdateCampaign)
			r.Patch("/status", h.handleSwitchCampaignStatus)
			r.Patch("/budget", h.handleAdjustCampaignBudget)

			r.Route("/ad-sets", func(r chi.Router) {
				r.Post("/", h.handleCreateAdSet)

				r.Route("/{adSetID}", func(r chi.Router) {
					r.Patch("/", h.handleUpdateAdSet)
					r.Patch("/status", h.handleSwitchAdSetStatus)
					r.Delete("/", h.handleDeleteAdSet)

					r.Route("/ads", func(r chi.Router) {
						r.Post("/", h.handleCreateAd)

						r.Route("/{adID}", func(r chi.Router) {
							r.Patch("/", h.handleUpdateAd)
							r.Patch("/status", h.handleSwitchAdStatus)
							r.Delete("/", h.handleDeleteAd)
						})
					})
				})
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
