package search

import (
	"context"
	"strings"
)

// CatalogProvider matches against a fixed in-process catalog. It stands in
// for the external book API in development and tests.
type CatalogProvider struct {
	candidates []Candidate
}

// NewCatalogProvider returns a provider over the default fixture catalog.
func NewCatalogProvider() *CatalogProvider {
	return &CatalogProvider{candidates: defaultCatalog}
}

// Search performs a case-insensitive substring match against title or any
// author name.
func (p *CatalogProvider) Search(ctx context.Context, query string) ([]Candidate, error) {
	out := make([]Candidate, 0)
	if query == "" {
		return out, nil
	}
	q := strings.ToLower(query)
	for _, c := range p.candidates {
		if matches(&c, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func matches(c *Candidate, q string) bool {
	if strings.Contains(strings.ToLower(c.Title), q) {
		return true
	}
	for _, a := range c.Authors {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	return false
}

var defaultCatalog = []Candidate{
	{
		ID:          "1",
		Title:       "The Great Gatsby",
		Authors:     []string{"F. Scott Fitzgerald"},
		Thumbnail:   "/placeholder.svg?height=200&width=150",
		Description: "A classic American novel set in the Jazz Age.",
	},
	{
		ID:          "2",
		Title:       "To Kill a Mockingbird",
		Authors:     []string{"Harper Lee"},
		Thumbnail:   "/placeholder.svg?height=200&width=150",
		Description: "A gripping tale of racial injustice and childhood innocence.",
	},
	{
		ID:          "3",
		Title:       "1984",
		Authors:     []string{"George Orwell"},
		Thumbnail:   "/placeholder.svg?height=200&width=150",
		Description: "A dystopian social science fiction novel.",
	},
	{
		ID:          "4",
		Title:       "Pride and Prejudice",
		Authors:     []string{"Jane Austen"},
		Thumbnail:   "/placeholder.svg?height=200&width=150",
		Description: "A romantic novel of manners.",
	},
	{
		ID:          "5",
		Title:       "The Catcher in the Rye",
		Authors:     []string{"J.D. Salinger"},
		Thumbnail:   "/placeholder.svg?height=200&width=150",
		Description: "A controversial novel about teenage rebellion.",
	},
}
