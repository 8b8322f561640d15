package session

import (
	"context"
	"errors"
	"time"

	sessionrepo "github.com/bookburst/bookburst/service-api-go-stdlib/internal/session/repo"
	"github.com/bookburst/bookburst/service-api-go-stdlib/pkg/utilities"
)

// TTL is the session lifetime, mirrored by the cookie max-age.
const TTL = 7 * 24 * time.Hour

// ErrInvalidSession covers absent, unknown and expired tokens alike.
var ErrInvalidSession = errors.New("invalid session")

// Manager translates between session tokens and user ids. Tokens are opaque
// to clients; a valid token always resolves to an existing user id.
type Manager interface {
	Issue(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// StoreManager maps random opaque tokens to user ids server-side.
type StoreManager struct {
	repo sessionrepo.Repository
	now  func() time.Time
}

func NewStoreManager(r sessionrepo.Repository) *StoreManager {
	return &StoreManager{repo: r, now: time.Now}
}

func (m *StoreManager) Issue(ctx context.Context, userID string) (string, error) {
	s := &sessionrepo.Session{
		Token:     utilities.NewKSUID(),
		UserID:    userID,
		ExpiresAt: m.now().Add(TTL),
	}
	if err := m.repo.Save(ctx, s); err != nil {
		return "", err
	}
	return s.Token, nil
}

func (m *StoreManager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	s, err := m.repo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, sessionrepo.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	if s.ExpiresAt.Before(m.now()) {
		// lazily drop the stale record
		_ = m.repo.Delete(ctx, token)
		return "", ErrInvalidSession
	}
	return s.UserID, nil
}

func (m *StoreManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.repo.Delete(ctx, token)
}
