package search

import "context"

// Candidate is an external book suggestion for the add-book flow; it is not
// yet on anyone's shelf.
type Candidate struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Provider answers free-text queries with candidate book metadata. An empty
// query returns an empty sequence, not an error. Implementations backed by a
// network catalog must surface downtime as an error, never a panic.
type Provider interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}
