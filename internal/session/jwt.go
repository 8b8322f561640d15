package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues signed stateless session tokens. Nothing is persisted,
// so Revoke cannot invalidate an outstanding token before its expiry; the
// store-backed manager is the default for that reason.
type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret []byte) *JWTManager {
	return &JWTManager{secret: secret, now: time.Now}
}

func (m *JWTManager) Issue(ctx context.Context, userID string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

func (m *JWTManager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

func (m *JWTManager) Revoke(ctx context.Context, token string) error {
	// stateless tokens expire on their own
	return nil
}
