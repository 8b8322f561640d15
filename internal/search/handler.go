package search

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Handler exposes the book search endpoint. Unauthenticated: candidates are
// public catalog metadata, not user data.
type Handler struct {
	provider Provider
	logger   *zap.SugaredLogger
}

func NewHandler(p Provider, logger *zap.SugaredLogger) *Handler {
	return &Handler{provider: p, logger: logger}
}

// SearchResponse wraps candidates in the items envelope.
type SearchResponse struct {
	Items []Candidate `json:"items"`
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	items, err := h.provider.Search(r.Context(), query)
	if err != nil {
		h.logger.Warnw("search provider failed", "err", err, "q", query)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Search failed"})
		return
	}
	h.writeJSON(w, http.StatusOK, SearchResponse{Items: items})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
