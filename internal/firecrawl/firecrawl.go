// Package firecrawl talks to the Firecrawl scraping API.
package firecrawl

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL         = "https://api.firecrawl.dev/v2"
	userAgent      = "spigell/job-scraper"
	defaultTimeout = 30 * time.Second

	ScrapePath = "/scrape"
	SearchPath = "/search"
)

type Client struct {
	apiKey     string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New returns a client for the public API. A non-positive timeout uses the 30s default.
func New(logger *zap.Logger, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey: apiKey,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// WithBaseURL points the client at another API root, e.g. a self-hosted instance.
func (c *Client) WithBaseURL(base string) *Client {
	if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
		c.APIURL = base
	}
	return c
}
