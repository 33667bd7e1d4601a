package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; job-scraper)"
)

// Page chrome that never carries posting details.
var removeSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"header", "footer", "nav", "aside", "form",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]",
}

var contentSelectors = "article, main, [role=main], .job, .job-description, #content"

// Direct fetches pages over plain HTTP and converts them to markdown locally.
// It cannot search.
type Direct struct {
	HTTPClient *http.Client
	UserAgent  string
	logger     *zap.Logger
}

func NewDirect(logger *zap.Logger, timeout time.Duration) *Direct {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Direct{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  defaultUserAgent,
		logger:     logger,
	}
}

func (d *Direct) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", d.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	d.logger.Debug("make request", zap.String("url", url))
	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: bad status: %s", url, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}

	return toMarkdown(doc)
}

// SearchPages is not supported by plain HTTP fetching.
func (d *Direct) SearchPages(_ context.Context, query string, _ int) []string {
	d.logger.Debug("direct provider cannot search", zap.String("query", query))
	return []string{}
}

// toMarkdown strips page chrome and renders the main content as markdown.
// The document title is emitted as a "Title:" line so the normalizer can label it.
func toMarkdown(doc *goquery.Document) (string, error) {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title, _ = doc.Find("meta[property='og:title']").First().Attr("content")
		title = strings.TrimSpace(title)
	}

	doc.Find(strings.Join(removeSelectors, ", ")).Remove()

	content := doc.Find(contentSelectors).First()
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	html, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)

	if title == "" {
		return markdown, nil
	}
	return "Title: " + title + "\n\n" + markdown, nil
}
