package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/session"
)

// Handler exposes the auth endpoints: signup, login, logout, me.
type Handler struct {
	svc      *Service
	sessions session.Manager
	logger   *zap.SugaredLogger
}

func NewHandler(svc *Service, sessions session.Manager, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, sessions: sessions, logger: logger}
}

// SignupRequest request body for the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid signup payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}
	u, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "User already exists"})
		case errors.Is(err, ErrValidation):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		default:
			h.logger.Errorw("signup failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return
	}
	if err := h.establish(w, r, u.ID); err != nil {
		return
	}
	h.writeJSON(w, http.StatusOK, u.Public())
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}
	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		h.logger.Errorw("login failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	if err := h.establish(w, r, u.ID); err != nil {
		return
	}
	h.writeJSON(w, http.StatusOK, u.Public())
}

// Logout revokes the current session, if any, and clears the cookie. It
// succeeds regardless of whether a valid session was presented.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if tok := session.TokenFromRequest(r); tok != "" {
		if err := h.sessions.Revoke(r.Context(), tok); err != nil {
			h.logger.Warnw("session revoke failed", "err", err)
		}
	}
	session.Clear(w)
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me resolves the session cookie to the current user. A session pointing at
// a user that no longer exists yields 404.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := h.sessions.Resolve(r.Context(), session.TokenFromRequest(r))
	if err != nil {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return
	}
	u, err := h.svc.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
			return
		}
		h.logger.Errorw("auth check failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, u.Public())
}

func (h *Handler) establish(w http.ResponseWriter, r *http.Request, userID string) error {
	tok, err := h.sessions.Issue(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("session issue failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return err
	}
	session.Establish(w, tok)
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
