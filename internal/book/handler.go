package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/entity"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/session"
)

// Handler exposes the shelf CRUD endpoints. Every method expects RequireUser
// to have put the owner id in the request context.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserID(r.Context())
	books, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("list books failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, books)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserID(r.Context())
	var in AddInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}
	b, err := h.svc.Add(r.Context(), userID, in)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Errorw("add book failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserID(r.Context())
	id := r.PathValue("id")
	var p entity.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}
	b, err := h.svc.Update(r.Context(), id, userID, p)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Book not found"})
		case errors.Is(err, ErrValidation):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			h.logger.Errorw("update book failed", "err", err, "id", id)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserID(r.Context())
	id := r.PathValue("id")
	if err := h.svc.Remove(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Book not found"})
			return
		}
		h.logger.Errorw("delete book failed", "err", err, "id", id)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
