// Package pipeline runs one scrape: collect URLs, fetch, filter, rank.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-scraper/internal/fetcher"
	"github.com/spigell/job-scraper/internal/filtering"
	"github.com/spigell/job-scraper/internal/jobs"
	"github.com/spigell/job-scraper/internal/normalize"
	"github.com/spigell/job-scraper/internal/ranking"
)

const defaultSourceLimit = 30

// Source is a named group of search queries sharing one URL budget.
type Source struct {
	Name    string   `mapstructure:"name"`
	Queries []string `mapstructure:"queries"`
	Limit   int      `mapstructure:"limit"`
}

type Config struct {
	// URLs are fetched as-is, ahead of anything found by search.
	URLs    []string            `mapstructure:"urls"`
	Sources []Source            `mapstructure:"sources"`
	Fetch   fetcher.BatchConfig `mapstructure:"fetch"`
}

type Pipeline struct {
	cfg       *Config
	fetcher   fetcher.Fetcher
	filtering *filtering.Filtering
	keywords  []string
	normalize fetcher.NormalizeFunc
	logger    *zap.Logger
	now       func() time.Time
}

// New wires a pipeline. keywords drive ranking and are normally the criteria keywords.
func New(cfg *Config, f fetcher.Fetcher, filters *filtering.Filtering, keywords []string, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:       cfg,
		fetcher:   f,
		filtering: filters,
		keywords:  keywords,
		normalize: normalize.Normalize,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes the whole pipeline for up to target postings. It always
// returns a result: failures, including panics, end up in Result.Errors.
func (p *Pipeline) Run(ctx context.Context, target int) (result *Result) {
	started := p.now()
	scraped := 0
	defer p.recoverInto(&result, &scraped)

	p.logger.Info("collecting job urls", zap.Int("target", target))
	urls := jobs.UniqueURLs(p.CollectURLs(ctx, target))
	p.logger.Info("unique urls collected", zap.Int("count", len(urls)))

	candidates, err := fetcher.Batch(ctx, p.fetcher, urls, p.normalize, p.cfg.Fetch, p.logger)
	scraped = len(candidates)
	if err != nil {
		err = fmt.Errorf("fetch pages: %w", err)
		p.logger.Error("fetching stopped early", zap.Error(err), zap.Int("fetched", scraped))
	}

	result = p.finish(ctx, candidates, target, err)

	p.logger.Info("scraping complete",
		zap.Int("urls_collected", len(urls)),
		zap.Int("jobs_processed", result.JobsScraped),
		zap.Int("jobs_filtered", result.JobsFiltered),
		zap.Duration("took", p.now().Sub(started)),
	)

	return result
}

// RunCandidates builds a result from candidates that were obtained elsewhere,
// such as synthetic ones. It follows the same rules as Run.
func (p *Pipeline) RunCandidates(ctx context.Context, candidates []jobs.Candidate, target int) (result *Result) {
	scraped := len(candidates)
	defer p.recoverInto(&result, &scraped)

	return p.finish(ctx, candidates, target, nil)
}

// finish processes candidates and packs the envelope. A non-nil fetchErr is
// reported next to the postings that could still be produced.
func (p *Pipeline) finish(ctx context.Context, candidates []jobs.Candidate, target int, fetchErr error) *Result {
	kept, err := p.Process(ctx, candidates, target)
	if err != nil {
		p.logger.Error("processing failed", zap.Error(err))
		return newResult(len(candidates), nil, errors.Join(fetchErr, err), p.now())
	}

	return newResult(len(candidates), kept, fetchErr, p.now())
}

func (p *Pipeline) recoverInto(result **Result, scraped *int) {
	if r := recover(); r != nil {
		err := fmt.Errorf("pipeline panic: %v", r)
		p.logger.Error("run failed", zap.Error(err))
		*result = newResult(*scraped, nil, err, p.now())
	}
}

// CollectURLs gathers seed URLs and search results. Sources are consulted in
// order until target URLs are collected; a non-positive target consults all.
// Duplicates are kept.
func (p *Pipeline) CollectURLs(ctx context.Context, target int) []string {
	urls := append([]string{}, p.cfg.URLs...)

	for _, src := range p.cfg.Sources {
		if target > 0 && len(urls) >= target {
			p.logger.Debug("url target reached, skipping source", zap.String("source", src.Name))
			break
		}

		found := p.searchSource(ctx, src)
		p.logger.Info("source searched", zap.String("source", src.Name), zap.Int("urls", len(found)))
		urls = append(urls, found...)
	}

	return urls
}

func (p *Pipeline) searchSource(ctx context.Context, src Source) []string {
	if len(src.Queries) == 0 {
		return nil
	}

	limit := src.Limit
	if limit <= 0 {
		limit = defaultSourceLimit
	}
	perQuery := max(limit/len(src.Queries), 1)

	var found []string
	for _, query := range src.Queries {
		found = append(found, p.fetcher.SearchPages(ctx, query, perQuery)...)
	}

	if len(found) > limit {
		found = found[:limit]
	}
	return found
}

// Process turns fetched candidates into at most target ranked postings.
// Candidates without title, company, location or url are dropped first and
// are not counted as rejections. Candidates that fail validation are logged
// and dropped. A non-positive target keeps every posting.
func (p *Pipeline) Process(ctx context.Context, candidates []jobs.Candidate, target int) ([]*jobs.Posting, error) {
	complete, incomplete := jobs.NewCandidates(candidates).Keep(func(c *jobs.Candidate) bool {
		return c.HasMandatoryFields()
	})
	p.logger.Debug("incomplete candidates dropped", zap.Int("count", len(incomplete)))

	accepted, err := p.filtering.RunFilters(ctx, complete)
	if err != nil {
		return nil, fmt.Errorf("filter candidates: %w", err)
	}

	postings := make([]*jobs.Posting, 0, accepted.Len())
	for _, c := range accepted.Items {
		posting, err := c.Validate()
		if err != nil {
			p.logger.Warn("validation error for job", zap.String("url", c.URL), zap.Error(err))
			continue
		}
		postings = append(postings, posting)
	}

	ranked := ranking.RankScored(postings, p.keywords)
	if target > 0 && len(ranked) > target {
		ranked = ranked[:target]
	}

	out := make([]*jobs.Posting, len(ranked))
	for i, s := range ranked {
		out[i] = s.Posting
		p.logger.Debug("ranked", zap.Int("position", i+1), zap.Int("score", s.Score), zap.String("url", s.Posting.URL))
	}

	return out, nil
}
