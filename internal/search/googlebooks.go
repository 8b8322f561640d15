package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GoogleBooksProvider queries a Google Books style volumes endpoint. A
// per-request timeout keeps provider downtime from hanging the add-book flow.
type GoogleBooksProvider struct {
	baseURL string
	client  *http.Client
}

func NewGoogleBooksProvider(baseURL string) *GoogleBooksProvider {
	return &GoogleBooksProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title      string   `json:"title"`
			Authors    []string `json:"authors"`
			ImageLinks struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			Description string `json:"description"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (p *GoogleBooksProvider) Search(ctx context.Context, query string) ([]Candidate, error) {
	out := make([]Candidate, 0)
	if query == "" {
		return out, nil
	}
	u := p.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search provider: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider: unexpected status %d", resp.StatusCode)
	}
	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	for _, item := range body.Items {
		out = append(out, Candidate{
			ID:          item.ID,
			Title:       item.VolumeInfo.Title,
			Authors:     item.VolumeInfo.Authors,
			Thumbnail:   item.VolumeInfo.ImageLinks.Thumbnail,
			Description: item.VolumeInfo.Description,
		})
	}
	return out, nil
}
