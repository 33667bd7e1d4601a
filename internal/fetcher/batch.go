package fetcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/job-scraper/internal/jobs"
	"github.com/spigell/job-scraper/internal/utils"
)

const (
	DefaultBatchSize  = 5
	DefaultBatchDelay = 2 * time.Second
)

// NormalizeFunc turns fetched page text into a candidate.
type NormalizeFunc func(raw, url string) jobs.Candidate

type BatchConfig struct {
	Size  int           `mapstructure:"batch-size"`
	Delay time.Duration `mapstructure:"batch-delay"`
}

var wait = utils.WaitFor

// Batch fetches urls in groups of cfg.Size, concurrently within a group, pausing
// cfg.Delay between groups. Non-positive size or delay fall back to the
// defaults. A URL that cannot be fetched yields a candidate that only carries
// the URL. The result has one candidate per URL in input order.
// The only error returned is the context error when ctx ends between groups.
func Batch(ctx context.Context, f Fetcher, urls []string, normalize NormalizeFunc, cfg BatchConfig, logger *zap.Logger) ([]jobs.Candidate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := cfg.Size
	if size <= 0 {
		size = DefaultBatchSize
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultBatchDelay
	}

	results := make([]jobs.Candidate, len(urls))
	failed := 0

	for start := 0; start < len(urls); start += size {
		end := min(start+size, len(urls))
		errs := make([]error, end-start)

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				defer func() {
					if r := recover(); r != nil {
						errs[i-start] = fmt.Errorf("fetch panicked: %v", r)
						results[i] = jobs.NewCandidate(urls[i])
					}
				}()

				raw, err := f.FetchPage(ctx, urls[i])
				if err != nil {
					errs[i-start] = err
					results[i] = jobs.NewCandidate(urls[i])
					return nil
				}
				results[i] = normalize(raw, urls[i])
				return nil
			})
		}
		_ = g.Wait()

		for i, err := range errs {
			if err != nil {
				failed++
				logger.Warn("cannot fetch page", zap.String("url", urls[start+i]), zap.Error(err))
			}
		}

		logger.Debug("batch fetched",
			zap.Int("from", start),
			zap.Int("to", end),
			zap.Int("total", len(urls)),
		)

		if end < len(urls) {
			if err := wait(ctx, delay); err != nil {
				return results[:end], err
			}
		}
	}

	logger.Info("pages fetched", zap.Int("count", len(urls)), zap.Int("failed", failed))
	return results, nil
}
