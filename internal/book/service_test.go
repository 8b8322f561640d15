package book

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/entity"
	bookrepo "github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/repo"
)

func newTestService() *Service {
	return NewService(bookrepo.NewMemoryRepo())
}

func strPtr(s string) *string                  { return &s }
func intPtr(n int) *int                        { return &n }
func statusPtr(s entity.Status) *entity.Status { return &s }

func TestAdd(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b, err := svc.Add(ctx, "u1", AddInput{Title: "1984", Author: "Orwell", Cover: "x", Status: entity.StatusWantToRead})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "u1", b.UserID)
	assert.False(t, b.DateAdded.IsZero())
	assert.Nil(t, b.DateFinished)
}

func TestAddValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   AddInput
	}{
		{"missing title", AddInput{Author: "Orwell", Cover: "x", Status: entity.StatusReading}},
		{"missing author", AddInput{Title: "1984", Cover: "x", Status: entity.StatusReading}},
		{"missing cover", AddInput{Title: "1984", Author: "Orwell", Status: entity.StatusReading}},
		{"bad status", AddInput{Title: "1984", Author: "Orwell", Cover: "x", Status: "abandoned"}},
		{"rating too low", AddInput{Title: "1984", Author: "Orwell", Cover: "x", Status: entity.StatusReading, Rating: intPtr(0)}},
		{"rating too high", AddInput{Title: "1984", Author: "Orwell", Cover: "x", Status: entity.StatusReading, Rating: intPtr(6)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, "u1", tt.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestListScoping(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b1, err := svc.Add(ctx, "u1", AddInput{Title: "A", Author: "a", Cover: "x", Status: entity.StatusReading})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u2", AddInput{Title: "B", Author: "b", Cover: "x", Status: entity.StatusReading})
	require.NoError(t, err)
	b3, err := svc.Add(ctx, "u1", AddInput{Title: "C", Author: "c", Cover: "x", Status: entity.StatusFinished})
	require.NoError(t, err)

	books, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, b1.ID, books[0].ID)
	assert.Equal(t, b3.ID, books[1].ID)

	books, err = svc.List(ctx, "u3")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestOwnershipIsolation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b, err := svc.Add(ctx, "u1", AddInput{Title: "A", Author: "a", Cover: "x", Status: entity.StatusReading})
	require.NoError(t, err)

	// a non-owner's attempt is indistinguishable from a missing book
	_, err = svc.Update(ctx, b.ID, "u2", entity.Patch{Status: statusPtr(entity.StatusFinished)})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Remove(ctx, b.ID, "u2")
	assert.ErrorIs(t, err, ErrNotFound)

	// the owner still sees an untouched book
	books, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, entity.StatusReading, books[0].Status)
}

func TestUpdateSetsDateFinished(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b, err := svc.Add(ctx, "u1", AddInput{Title: "A", Author: "a", Cover: "x", Status: entity.StatusReading})
	require.NoError(t, err)
	require.Nil(t, b.DateFinished)

	updated, err := svc.Update(ctx, b.ID, "u1", entity.Patch{Status: statusPtr(entity.StatusFinished)})
	require.NoError(t, err)
	require.NotNil(t, updated.DateFinished)
	first := *updated.DateFinished

	// the automatic rule never overwrites an existing dateFinished
	svc.now = func() time.Time { return first.Add(48 * time.Hour) }
	again, err := svc.Update(ctx, b.ID, "u1", entity.Patch{Status: statusPtr(entity.StatusFinished)})
	require.NoError(t, err)
	require.NotNil(t, again.DateFinished)
	assert.True(t, again.DateFinished.Equal(first))
}

func TestUpdateExplicitDateFinishedWins(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b, err := svc.Add(ctx, "u1", AddInput{Title: "A", Author: "a", Cover: "x", Status: entity.StatusReading})
	require.NoError(t, err)

	explicit := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, b.ID, "u1", entity.Patch{
		Status:       statusPtr(entity.StatusFinished),
		DateFinished: &explicit,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DateFinished)
	assert.True(t, updated.DateFinished.Equal(explicit))
}

func TestUpdatePartialPatch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b, err := svc.Add(ctx, "u1", AddInput{Title: "A", Author: "a", Cover: "x", Status: entity.StatusReading})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, b.ID, "u1", entity.Patch{
		Rating: intPtr(4),
		Notes:  strPtr("great"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, entity.StatusReading, updated.Status)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4, *updated.Rating)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "great", *updated.Notes)
	assert.Nil(t, updated.DateFinished)
}

func TestUpdateValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b, err := svc.Add(ctx, "u1", AddInput{Title: "A", Author: "a", Cover: "x", Status: entity.StatusReading})
	require.NoError(t, err)

	_, err = svc.Update(ctx, b.ID, "u1", entity.Patch{Status: statusPtr("paused")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, b.ID, "u1", entity.Patch{Rating: intPtr(9)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConcurrentPatchesMergeBothFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// two patches touching disjoint fields must both land, whatever the
	// interleaving; a snapshot-then-write-back update would let one full
	// record overwrite the other's fields
	for i := 0; i < 50; i++ {
		b, err := svc.Add(ctx, "u1", AddInput{Title: "A", Author: "a", Cover: "x", Status: entity.StatusReading})
		require.NoError(t, err)

		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Update(ctx, b.ID, "u1", entity.Patch{Rating: intPtr(4)})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Update(ctx, b.ID, "u1", entity.Patch{Notes: strPtr("great")})
			assert.NoError(t, err)
		}()
		close(start)
		wg.Wait()

		books, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		var got *entity.Book
		for j := range books {
			if books[j].ID == b.ID {
				got = &books[j]
			}
		}
		require.NotNil(t, got)
		require.NotNil(t, got.Rating, "rating lost by concurrent patch")
		assert.Equal(t, 4, *got.Rating)
		require.NotNil(t, got.Notes, "notes lost by concurrent patch")
		assert.Equal(t, "great", *got.Notes)
	}
}

func TestRemove(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b, err := svc.Add(ctx, "u1", AddInput{Title: "A", Author: "a", Cover: "x", Status: entity.StatusReading})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, b.ID, "u1"))

	err = svc.Remove(ctx, b.ID, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	books, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, books)
}
