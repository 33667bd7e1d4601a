// Package fetcher retrieves raw page text for job URLs.
package fetcher

import "context"

// Fetcher is implemented by page content providers.
type Fetcher interface {
	// FetchPage returns the text of url, or an error the caller is expected to absorb.
	FetchPage(ctx context.Context, url string) (string, error)
	// SearchPages returns up to limit URLs for query. It never fails; errors yield no URLs.
	SearchPages(ctx context.Context, query string, limit int) []string
}

const (
	ProviderFirecrawl = "firecrawl"
	ProviderDirect    = "direct"
)
