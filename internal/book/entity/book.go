package entity

import "time"

// Status is the shelf a book sits on. Closed enumeration.
type Status string

const (
	StatusReading    Status = "reading"
	StatusFinished   Status = "finished"
	StatusWantToRead Status = "want-to-read"
)

// Valid reports whether s is one of the known shelf values.
func (s Status) Valid() bool {
	switch s {
	case StatusReading, StatusFinished, StatusWantToRead:
		return true
	}
	return false
}

// Book is one user's entry on their shelf. Every book belongs to exactly one
// user; ownership is enforced on every read and mutation of a specific book.
type Book struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"userId" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	Author       string     `json:"author" db:"author"`
	Cover        string     `json:"cover" db:"cover"`
	Status       Status     `json:"status" db:"status"`
	Rating       *int       `json:"rating,omitempty" db:"rating"`
	Notes        *string    `json:"notes,omitempty" db:"notes"`
	DateAdded    time.Time  `json:"dateAdded" db:"date_added"`
	DateFinished *time.Time `json:"dateFinished,omitempty" db:"date_finished"`
}

// Patch is a partial update; nil fields are left untouched. An explicit
// DateFinished always wins over the automatic finished-date rule.
type Patch struct {
	Title        *string    `json:"title"`
	Author       *string    `json:"author"`
	Cover        *string    `json:"cover"`
	Status       *Status    `json:"status"`
	Rating       *int       `json:"rating"`
	Notes        *string    `json:"notes"`
	DateFinished *time.Time `json:"dateFinished"`
}

// Review is a community-visible reading record: a finished book carrying a
// rating or notes. The reviewer's display name is resolved at the API layer.
type Review struct {
	BookID       string     `db:"id"`
	UserID       string     `db:"user_id"`
	Title        string     `db:"title"`
	Author       string     `db:"author"`
	Cover        string     `db:"cover"`
	Rating       *int       `db:"rating"`
	Notes        *string    `db:"notes"`
	DateFinished *time.Time `db:"date_finished"`
}

// TrendingTitle aggregates one title across all shelves.
type TrendingTitle struct {
	Title     string  `db:"title"`
	Author    string  `db:"author"`
	Cover     string  `db:"cover"`
	Readers   int     `db:"readers"`
	AvgRating float64 `db:"avg_rating"`
}
