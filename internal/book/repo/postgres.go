package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/entity"
)

// PostgresRepo provides data access for the books table using sqlx. Every
// mutation is keyed by (id, user_id); Mutate holds a row lock for the span
// of the read-modify-write so each API call stays one atomic unit.
type PostgresRepo struct {
	db *sqlx.DB
}

func NewPostgresRepo(db *sqlx.DB) *PostgresRepo { return &PostgresRepo{db: db} }

// EnsureTable creates the books table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *PostgresRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS books (
  id VARCHAR(32) PRIMARY KEY,
  user_id VARCHAR(32) NOT NULL,
  title TEXT NOT NULL,
  author TEXT NOT NULL,
  cover TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  rating INT,
  notes TEXT,
  date_added TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  date_finished TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_books_user_id ON books(user_id);
CREATE INDEX IF NOT EXISTS idx_books_date_finished ON books(date_finished);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const bookColumns = `id, user_id, title, author, cover, status, rating, notes, date_added, date_finished`

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]entity.Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE user_id=$1 ORDER BY date_added`
	out := make([]entity.Book, 0)
	if err := r.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *entity.Book) error {
	const q = `INSERT INTO books (id, user_id, title, author, cover, status, rating, notes, date_added, date_finished)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.UserID, b.Title, b.Author, b.Cover, b.Status, b.Rating, b.Notes, b.DateAdded, b.DateFinished)
	return err
}

func (r *PostgresRepo) Mutate(ctx context.Context, id, userID string, fn func(b *entity.Book)) (*entity.Book, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// the row lock holds until commit, so the read-modify-write below is
	// one atomic unit per API call
	const sel = `SELECT ` + bookColumns + ` FROM books WHERE id=$1 AND user_id=$2 FOR UPDATE`
	var row entity.Book
	if err := tx.GetContext(ctx, &row, sel, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fn(&row)

	const upd = `UPDATE books SET title=$3, author=$4, cover=$5, status=$6, rating=$7, notes=$8, date_finished=$9
	             WHERE id=$1 AND user_id=$2`
	if _, err := tx.ExecContext(ctx, upd,
		row.ID, row.UserID, row.Title, row.Author, row.Cover, row.Status, row.Rating, row.Notes, row.DateFinished); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Reviews(ctx context.Context, limit int) ([]entity.Review, error) {
	const q = `SELECT id, user_id, title, author, cover, rating, notes, date_finished
	           FROM books
	           WHERE status='finished' AND date_finished IS NOT NULL
	             AND (rating IS NOT NULL OR COALESCE(notes, '') <> '')
	           ORDER BY date_finished DESC
	           LIMIT $1`
	out := make([]entity.Review, 0)
	if err := r.db.SelectContext(ctx, &out, q, limit); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepo) Trending(ctx context.Context, limit int) ([]entity.TrendingTitle, error) {
	const q = `SELECT title, author, MIN(cover) AS cover,
	                  COUNT(*) AS readers, COALESCE(AVG(rating), 0)::float8 AS avg_rating
	           FROM books
	           GROUP BY title, author
	           ORDER BY readers DESC, avg_rating DESC
	           LIMIT $1`
	out := make([]entity.TrendingTitle, 0)
	if err := r.db.SelectContext(ctx, &out, q, limit); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepo) FinishedInYear(ctx context.Context, userID string, year int) ([]entity.Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books
	           WHERE user_id=$1 AND status='finished' AND date_finished IS NOT NULL
	             AND EXTRACT(YEAR FROM date_finished) = $2
	           ORDER BY date_finished DESC`
	out := make([]entity.Book, 0)
	if err := r.db.SelectContext(ctx, &out, q, userID, year); err != nil {
		return nil, err
	}
	return out, nil
}
