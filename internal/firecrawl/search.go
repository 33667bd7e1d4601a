package firecrawl

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

type searchRequest struct {
	Query   string   `json:"query"`
	Limit   int      `json:"limit"`
	Formats []string `json:"formats"`
}

type SearchLink struct {
	URL   string `mapstructure:"url"`
	Title string `mapstructure:"title"`
}

// SearchData holds result links. Older responses list them under "links",
// current ones under "web".
type SearchData struct {
	Links []SearchLink `mapstructure:"links"`
	Web   []SearchLink `mapstructure:"web"`
}

// SearchPages returns job page URLs for query. Any failure is logged and yields no URLs.
func (c *Client) SearchPages(ctx context.Context, query string, limit int) []string {
	logger := c.logger.With(zap.String("query", query))

	env, err := c.postJSON(ctx, SearchPath, searchRequest{Query: query, Limit: limit, Formats: []string{"links"}})
	if err != nil {
		logger.Warn("search failed", zap.Error(err))
		return []string{}
	}
	if !env.Success {
		logger.Warn("search was not successful", zap.String("error", env.Error))
		return []string{}
	}

	var data SearchData
	if err := mapstructure.Decode(env.Data, &data); err != nil {
		logger.Warn("cannot decode search results", zap.Error(err))
		return []string{}
	}

	urls := make([]string, 0, len(data.Links)+len(data.Web))
	for _, link := range append(data.Links, data.Web...) {
		if link.URL != "" {
			urls = append(urls, link.URL)
		}
	}

	logger.Debug("search finished", zap.Int("found", len(urls)))
	return urls
}
