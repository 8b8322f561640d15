package explore

import (
	"context"
	"errors"
	"time"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/book"
	bookentity "github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/entity"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/user"
)

// Review is a community feed entry: a finished book with a rating or notes,
// decorated with the reviewer's display name.
type Review struct {
	ID           string     `json:"id"`
	BookTitle    string     `json:"bookTitle"`
	BookAuthor   string     `json:"bookAuthor"`
	BookCover    string     `json:"bookCover"`
	Rating       *int       `json:"rating,omitempty"`
	Content      string     `json:"content,omitempty"`
	UserName     string     `json:"userName"`
	DateFinished *time.Time `json:"dateFinished,omitempty"`
}

// TimelineGroup is one month of a user's finished books.
type TimelineGroup struct {
	Period string            `json:"period"`
	Books  []bookentity.Book `json:"books"`
}

// Service composes the book store's community queries with user display
// names for the public explore feed and the per-user timeline.
type Service struct {
	books *book.Service
	users *user.Service
}

func NewService(books *book.Service, users *user.Service) *Service {
	return &Service{books: books, users: users}
}

// RecentReviews returns the newest community reviews. Reviews whose author
// no longer resolves keep an empty userName rather than failing the feed.
func (s *Service) RecentReviews(ctx context.Context, limit int) ([]Review, error) {
	rows, err := s.books.Reviews(ctx, limit)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	out := make([]Review, 0, len(rows))
	for _, r := range rows {
		name, ok := names[r.UserID]
		if !ok {
			u, err := s.users.GetByID(ctx, r.UserID)
			if err != nil && !errors.Is(err, user.ErrNotFound) {
				return nil, err
			}
			if err == nil {
				name = u.Name
			}
			names[r.UserID] = name
		}
		rv := Review{
			ID:           r.BookID,
			BookTitle:    r.Title,
			BookAuthor:   r.Author,
			BookCover:    r.Cover,
			Rating:       r.Rating,
			UserName:     name,
			DateFinished: r.DateFinished,
		}
		if r.Notes != nil {
			rv.Content = *r.Notes
		}
		out = append(out, rv)
	}
	return out, nil
}

// Trending returns titles ranked by reader count and average rating.
func (s *Service) Trending(ctx context.Context, limit int) ([]bookentity.TrendingTitle, error) {
	return s.books.Trending(ctx, limit)
}

// Timeline groups the user's finished books for one year by month, newest
// group first. Book order inside a group follows the repo's
// newest-first ordering.
func (s *Service) Timeline(ctx context.Context, userID string, year int) ([]TimelineGroup, error) {
	books, err := s.books.FinishedInYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	groups := make([]TimelineGroup, 0)
	idx := make(map[string]int)
	for _, b := range books {
		period := b.DateFinished.Format("January 2006")
		i, ok := idx[period]
		if !ok {
			i = len(groups)
			idx[period] = i
			groups = append(groups, TimelineGroup{Period: period})
		}
		groups[i].Books = append(groups[i].Books, b)
	}
	return groups, nil
}
