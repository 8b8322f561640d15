package repo

import (
	"context"
	"errors"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/entity"
)

// ErrNotFound is returned when no book matches both id and owner. A
// non-owner's attempt is indistinguishable from a missing book.
var ErrNotFound = errors.New("book not found")

// Repository provides data access for books. Mutate and Delete key every
// operation by (id, userID) so ownership is folded into existence.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Book, error)
	Create(ctx context.Context, b *entity.Book) error
	// Mutate applies fn to the book and persists the result as one atomic
	// read-modify-write: no other mutation of the same book may interleave
	// between the read and the write.
	Mutate(ctx context.Context, id, userID string, fn func(b *entity.Book)) (*entity.Book, error)
	Delete(ctx context.Context, id, userID string) error

	// community queries backing the explore and timeline endpoints
	Reviews(ctx context.Context, limit int) ([]entity.Review, error)
	Trending(ctx context.Context, limit int) ([]entity.TrendingTitle, error)
	FinishedInYear(ctx context.Context, userID string, year int) ([]entity.Book, error)
}
