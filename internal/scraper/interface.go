package scraper

import "context"

// Fetcher downloads the raw HTML of one job page.
type Fetcher interface {
	Name() string
	FetchHTML(ctx context.Context, url string) (string, error)
}
