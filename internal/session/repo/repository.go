package repo

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a token matches no stored session.
var ErrNotFound = errors.New("session not found")

// Session is a server-side record mapping an opaque token to a user.
type Session struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Repository persists sessions keyed by token.
type Repository interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
