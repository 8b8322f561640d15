package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userrepo "github.com/bookburst/bookburst/service-api-go-stdlib/internal/user/repo"
)

func newTestService() *Service {
	// low cost keeps the test fast; production default stays at 12
	return NewService(userrepo.NewMemoryRepo(), BcryptHasher{Cost: 4})
}

func TestRegister(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@b.com", "pw", "A")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "A", u.Name)
	assert.False(t, u.CreatedAt.IsZero())

	// stored as a hash, never plaintext
	assert.NotEqual(t, "pw", u.PasswordHash)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "pw", "A")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@b.com", "other", "B")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// email comparison is case-insensitive after normalization
	_, err = svc.Register(ctx, "A@B.com", "other", "B")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		display  string
	}{
		{"empty email", "", "pw", "A"},
		{"empty password", "a@b.com", "", "A"},
		{"empty name", "a@b.com", "pw", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, tt.display)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, "a@b.com", "pw", "A")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)

	_, err = svc.Authenticate(ctx, "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown email is indistinguishable from a wrong password
	_, err = svc.Authenticate(ctx, "nobody@b.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetByID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, "a@b.com", "pw", "A")
	require.NoError(t, err)

	u, err := svc.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
