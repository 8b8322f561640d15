package explore

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/session"
)

const feedLimit = 20

// Handler exposes the explore feed and the finished-books timeline.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.RecentReviews(r.Context(), feedLimit)
	if err != nil {
		h.logger.Errorw("explore reviews failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.Trending(r.Context(), feedLimit)
	if err != nil {
		h.logger.Errorw("explore trending failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"books": books})
}

// Timeline requires a session; year defaults to the current year when the
// query parameter is absent or malformed.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserID(r.Context())
	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y > 0 {
			year = y
		}
	}
	groups, err := h.svc.Timeline(r.Context(), userID, year)
	if err != nil {
		h.logger.Errorw("timeline failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"year": year, "groups": groups})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
