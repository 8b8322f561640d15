package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionrepo "github.com/bookburst/bookburst/service-api-go-stdlib/internal/session/repo"
)

func TestStoreManagerIssueResolve(t *testing.T) {
	m := NewStoreManager(sessionrepo.NewMemoryRepo())
	ctx := context.Background()

	tok, err := m.Issue(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	// the token is opaque, never the raw user id
	assert.NotEqual(t, "u1", tok)

	userID, err := m.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestStoreManagerRejectsUnknownToken(t *testing.T) {
	m := NewStoreManager(sessionrepo.NewMemoryRepo())
	ctx := context.Background()

	_, err := m.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = m.Resolve(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestStoreManagerExpiry(t *testing.T) {
	m := NewStoreManager(sessionrepo.NewMemoryRepo())
	ctx := context.Background()

	base := time.Now()
	m.now = func() time.Time { return base }

	tok, err := m.Issue(ctx, "u1")
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(TTL - time.Minute) }
	_, err = m.Resolve(ctx, tok)
	assert.NoError(t, err)

	m.now = func() time.Time { return base.Add(TTL + time.Minute) }
	_, err = m.Resolve(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestStoreManagerRevoke(t *testing.T) {
	m := NewStoreManager(sessionrepo.NewMemoryRepo())
	ctx := context.Background()

	tok, err := m.Issue(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, tok))

	_, err = m.Resolve(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// revoking an absent token is a no-op
	assert.NoError(t, m.Revoke(ctx, ""))
}

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager([]byte("secret"))
	ctx := context.Background()

	tok, err := m.Issue(ctx, "u1")
	require.NoError(t, err)

	userID, err := m.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestJWTManagerRejectsForgedToken(t *testing.T) {
	ctx := context.Background()

	issuer := NewJWTManager([]byte("secret"))
	tok, err := issuer.Issue(ctx, "u1")
	require.NoError(t, err)

	other := NewJWTManager([]byte("different"))
	_, err = other.Resolve(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = other.Resolve(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestJWTManagerExpiry(t *testing.T) {
	m := NewJWTManager([]byte("secret"))
	ctx := context.Background()

	base := time.Now()
	m.now = func() time.Time { return base }
	tok, err := m.Issue(ctx, "u1")
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(TTL + time.Minute) }
	_, err = m.Resolve(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
