package repo

import (
	"context"
	"errors"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/user/entity"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
// ErrNotFound is returned by lookups that match no user.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("user not found")
)

// Repository provides data access for users. Implementations must enforce
// email uniqueness on Create.
type Repository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
