package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"mesa-campaigns/internal/core/domain"
)

// respondJSON writes v as a JSON body with the given status. Encoding
// failures are logged; headers are already sent at that point.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// respondError maps a domain error onto its HTTP status and serializes
// the errorCode plus contextual fields directly as the body. Anything
// that is not a domain error becomes a 500 with no detail leaked.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if de := domain.AsError(err); de != nil {
		status := http.StatusConflict
		if de.Kind == domain.KindNotFound {
			status = http.StatusNotFound
		}
		body := map[string]any{"errorCode": de.Code}
		for k, v := range de.Fields {
			body[k] = v
		}
		h.respondJSON(w, status, body)
		return
	}
	h.logger.Error("internal error", slog.Any("error", err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// decodeJSON parses the request body into dst. A malformed body is
// reported as 400 and false is returned.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}
