package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/entity"
)

// MemoryRepo is a process-local book store. A slice preserves insertion order
// for listing; a RWMutex serializes mutations per the shared-store model.
type MemoryRepo struct {
	mu    sync.RWMutex
	books []entity.Book
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Book, 0)
	for _, b := range r.books {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *MemoryRepo) Create(ctx context.Context, b *entity.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books = append(r.books, *b)
	return nil
}

func (r *MemoryRepo) Mutate(ctx context.Context, id, userID string, fn func(b *entity.Book)) (*entity.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.books {
		if r.books[i].ID == id && r.books[i].UserID == userID {
			// fn runs under the write lock so concurrent mutations of the
			// same book cannot interleave and lose fields
			fn(&r.books[i])
			cp := r.books[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.books {
		if r.books[i].ID == id && r.books[i].UserID == userID {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Reviews(ctx context.Context, limit int) ([]entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Review, 0)
	for _, b := range r.books {
		if !isReview(&b) {
			continue
		}
		out = append(out, entity.Review{
			BookID:       b.ID,
			UserID:       b.UserID,
			Title:        b.Title,
			Author:       b.Author,
			Cover:        b.Cover,
			Rating:       b.Rating,
			Notes:        b.Notes,
			DateFinished: b.DateFinished,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateFinished.After(*out[j].DateFinished)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func isReview(b *entity.Book) bool {
	if b.Status != entity.StatusFinished || b.DateFinished == nil {
		return false
	}
	return b.Rating != nil || (b.Notes != nil && *b.Notes != "")
}

func (r *MemoryRepo) Trending(ctx context.Context, limit int) ([]entity.TrendingTitle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	type agg struct {
		t         entity.TrendingTitle
		ratingSum int
		rated     int
	}
	byTitle := make(map[string]*agg)
	order := make([]string, 0)
	for _, b := range r.books {
		key := b.Title + "\x00" + b.Author
		a, ok := byTitle[key]
		if !ok {
			a = &agg{t: entity.TrendingTitle{Title: b.Title, Author: b.Author, Cover: b.Cover}}
			byTitle[key] = a
			order = append(order, key)
		}
		a.t.Readers++
		if b.Rating != nil {
			a.ratingSum += *b.Rating
			a.rated++
		}
	}
	out := make([]entity.TrendingTitle, 0, len(order))
	for _, key := range order {
		a := byTitle[key]
		if a.rated > 0 {
			a.t.AvgRating = float64(a.ratingSum) / float64(a.rated)
		}
		out = append(out, a.t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Readers != out[j].Readers {
			return out[i].Readers > out[j].Readers
		}
		return out[i].AvgRating > out[j].AvgRating
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) FinishedInYear(ctx context.Context, userID string, year int) ([]entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Book, 0)
	for _, b := range r.books {
		if b.UserID != userID || b.Status != entity.StatusFinished || b.DateFinished == nil {
			continue
		}
		if b.DateFinished.Year() != year {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateFinished.After(*out[j].DateFinished)
	})
	return out, nil
}
