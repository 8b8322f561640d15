package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/entity"
	bookrepo "github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/repo"
	"github.com/bookburst/bookburst/service-api-go-stdlib/pkg/utilities"
)

var (
	// ErrNotFound covers both a missing book and a non-owner's attempt.
	ErrNotFound   = errors.New("book not found")
	ErrValidation = errors.New("invalid book payload")
)

// AddInput carries the create-book fields.
type AddInput struct {
	Title  string        `json:"title"`
	Author string        `json:"author"`
	Cover  string        `json:"cover"`
	Status entity.Status `json:"status"`
	Rating *int          `json:"rating"`
	Notes  *string       `json:"notes"`
}

// Service implements shelf CRUD with ownership enforcement and the
// finished-date rule.
type Service struct {
	repo bookrepo.Repository
	now  func() time.Time
}

func NewService(r bookrepo.Repository) *Service {
	return &Service{repo: r, now: time.Now}
}

// List returns all books owned by userID, insertion order.
func (s *Service) List(ctx context.Context, userID string) ([]entity.Book, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add creates a book on the caller's shelf with a fresh id and dateAdded=now.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (*entity.Book, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Author) == "" || strings.TrimSpace(in.Cover) == "" {
		return nil, fmt.Errorf("%w: title, author and cover are required", ErrValidation)
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}
	if err := validRating(in.Rating); err != nil {
		return nil, err
	}
	b := &entity.Book{
		ID:        utilities.NewSnowflakeID(),
		UserID:    userID,
		Title:     in.Title,
		Author:    in.Author,
		Cover:     in.Cover,
		Status:    in.Status,
		Rating:    in.Rating,
		Notes:     in.Notes,
		DateAdded: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update applies a partial patch to a book owned by userID. The patch is
// applied first; if status lands on finished and dateFinished is still unset
// afterwards, it is stamped with now. Once stamped it is never overwritten by
// this rule, only by an explicit patch value. The merge runs inside the
// repository's atomic read-modify-write, so concurrent patches of the same
// book cannot lose each other's fields.
func (s *Service) Update(ctx context.Context, id, userID string, p entity.Patch) (*entity.Book, error) {
	if p.Status != nil && !p.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *p.Status)
	}
	if err := validRating(p.Rating); err != nil {
		return nil, err
	}
	b, err := s.repo.Mutate(ctx, id, userID, func(b *entity.Book) {
		applyPatch(b, p)
		if b.Status == entity.StatusFinished && b.DateFinished == nil {
			t := s.now().UTC()
			b.DateFinished = &t
		}
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return b, nil
}

// Remove deletes a book owned by userID.
func (s *Service) Remove(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

// Reviews returns recent community reviews, newest first.
func (s *Service) Reviews(ctx context.Context, limit int) ([]entity.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Reviews(ctx, limit)
}

// Trending returns titles ranked by reader count, then average rating.
func (s *Service) Trending(ctx context.Context, limit int) ([]entity.TrendingTitle, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Trending(ctx, limit)
}

// FinishedInYear returns the user's finished books for one year, newest first.
func (s *Service) FinishedInYear(ctx context.Context, userID string, year int) ([]entity.Book, error) {
	return s.repo.FinishedInYear(ctx, userID, year)
}

func applyPatch(b *entity.Book, p entity.Patch) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Cover != nil {
		b.Cover = *p.Cover
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.Rating != nil {
		b.Rating = p.Rating
	}
	if p.Notes != nil {
		b.Notes = p.Notes
	}
	if p.DateFinished != nil {
		b.DateFinished = p.DateFinished
	}
}

func validRating(r *int) error {
	if r != nil && (*r < 1 || *r > 5) {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	return nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, bookrepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
