package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-scraper/internal/filtering"
	"github.com/spigell/job-scraper/internal/pipeline"
	"github.com/spigell/job-scraper/internal/sample"
)

var sampleCmd = &cobra.Command{
	Use:          "sample",
	Short:        "Run synthetic postings through filtering and ranking, without network access",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSample(cmd)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntP("count", "c", 50, "number of synthetic postings to generate")
	sampleCmd.Flags().Uint64("seed", 0, "generator seed (0 picks one from the clock)")
	sampleCmd.Flags().Bool("no-salary-check", false, "ignore the configured salary bounds")
}

func runSample(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cmd.Name())
	config := loadConfig(logger)

	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	noSalary, _ := cmd.Flags().GetBool("no-salary-check")

	now := time.Now()
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}

	criteria := config.Criteria
	if criteria != nil && noSalary {
		c := *criteria
		c.MinHourlyRate, c.MaxHourlyRate = 0, 0
		criteria = &c
	}
	if err := criteria.Validate(); err != nil {
		logger.Fatal("invalid criteria", zap.Error(err))
	}

	filters := filtering.New([]filtering.Filter{filtering.NewCriteria(criteria, logger)}, logger)
	p := pipeline.New(pipelineConfig(config), nil, filters, criteria.Keywords, logger)

	candidates := sample.Generate(count, seed, now)
	logger.Info("generated sample postings", zap.Int("count", len(candidates)), zap.Uint64("seed", seed))

	result := p.RunCandidates(ctx, candidates, config.Target)
	for _, e := range result.Errors {
		logger.Warn("run error", zap.String("error", e))
	}

	if err := save(config.Output, result, logger); err != nil {
		return err
	}
	if !result.Success {
		return errRunFailed
	}
	return nil
}
