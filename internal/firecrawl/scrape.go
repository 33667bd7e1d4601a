package firecrawl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var ErrNoMarkdown = errors.New("firecrawl returned no markdown")

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type ScrapeData struct {
	Markdown string         `mapstructure:"markdown"`
	Metadata map[string]any `mapstructure:"metadata"`
}

// FetchPage scrapes url and returns its markdown rendition.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	env, err := c.postJSON(ctx, ScrapePath, scrapeRequest{URL: url, Formats: []string{"markdown"}})
	if err != nil {
		return "", fmt.Errorf("scrape %s: %w", url, err)
	}

	if !env.Success {
		if env.Error != "" {
			return "", fmt.Errorf("scrape %s: %s", url, env.Error)
		}
		return "", fmt.Errorf("scrape %s: unsuccessful response", url)
	}

	var data ScrapeData
	if err := mapstructure.Decode(env.Data, &data); err != nil {
		return "", fmt.Errorf("scrape %s: decode data: %w", url, err)
	}

	if strings.TrimSpace(data.Markdown) == "" {
		return "", fmt.Errorf("scrape %s: %w", url, ErrNoMarkdown)
	}

	return data.Markdown, nil
}
