package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-scraper/internal/ai"
	"github.com/spigell/job-scraper/internal/ai/gemini"
	"github.com/spigell/job-scraper/internal/fetcher"
	"github.com/spigell/job-scraper/internal/filtering"
	"github.com/spigell/job-scraper/internal/firecrawl"
	"github.com/spigell/job-scraper/internal/logger"
	"github.com/spigell/job-scraper/internal/output"
	"github.com/spigell/job-scraper/internal/pipeline"
	"github.com/spigell/job-scraper/internal/secrets"
)

const (
	PromptSave            = "Save results"
	PromptReportByCompany = "Report by company"
	PromptDumpToFile      = "Dump postings to tmp file"
	PromptExit            = "Exit"
)

var (
	errExit = errors.New("exit requested")
	// errRunFailed makes the process exit non-zero once results are handled.
	errRunFailed = errors.New("run finished without postings")
)

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSave, PromptReportByCompany, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:          "run",
	Short:        "Collect, filter and rank job postings",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "save results without asking")
	runCmd.Flags().IntP("target", "t", 0, "number of postings to keep (default from config, 50)")
	runCmd.Flags().String("output-json", "", "path of the JSON result envelope")
	runCmd.Flags().String("output-csv", "", "path of the CSV export")
	runCmd.Flags().String("provider", "", "page fetch provider: firecrawl or direct")

	viper.BindPFlag("target", runCmd.Flags().Lookup("target"))
	viper.BindPFlag("output.json", runCmd.Flags().Lookup("output-json"))
	viper.BindPFlag("output.csv", runCmd.Flags().Lookup("output-csv"))
	viper.BindPFlag("fetch.provider", runCmd.Flags().Lookup("provider"))
}

func run(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cmd.Name())
	config := loadConfig(logger)

	if err := config.Criteria.Validate(); err != nil {
		logger.Fatal("invalid criteria", zap.Error(err))
	}

	f, err := newFetcher(config, logger)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if errors.Is(err, secrets.ErrNotConfigured) {
			fields = append(fields, zap.String("hint", "set FIRECRAWL_API_KEY, firecrawl.api-key-file or use --provider direct"))
		}
		logger.Fatal("creating a page fetcher", fields...)
	}

	filters := prepareFilters(ctx, config, logger)

	p := pipeline.New(pipelineConfig(config), f, filters, config.Criteria.Keywords, logger)

	logger.Info("starting the search",
		zap.Int("target", config.Target),
		zap.Int("seed urls", len(config.URLs)),
		zap.Int("sources", len(config.Sources)),
	)

	result := p.Run(ctx, config.Target)

	return handleResult(cmd, config, result, logger)
}

// handleResult either saves right away or lets the operator look at the postings first.
func handleResult(cmd *cobra.Command, config *Config, result *pipeline.Result, logger *zap.Logger) error {
	for _, e := range result.Errors {
		logger.Warn("run error", zap.String("error", e))
	}

	status := func() error {
		if !result.Success {
			return errRunFailed
		}
		return nil
	}

	if len(result.Jobs) == 0 || cmd.Flag("auto-approve").Value.String() == "true" {
		if err := save(config.Output, result, logger); err != nil {
			return err
		}
		return status()
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}

		logger.Info("current list of postings", zap.Int("count", len(result.Jobs)))

		if err := handleAction(action, config, result, logger); err != nil {
			if errors.Is(err, errExit) {
				return status()
			}
			return err
		}
	}
}

func handleAction(action string, config *Config, result *pipeline.Result, logger *zap.Logger) error {
	switch action {
	case PromptSave:
		if err := save(config.Output, result, logger); err != nil {
			return err
		}
		return errExit
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "results were not saved"))
		return errExit
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(result.Postings().ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("postings count", len(result.Jobs)))
		return nil
	case PromptDumpToFile:
		filename, err := result.Postings().DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump postings to file: %w", err)
		}
		logger.Info("dumping postings to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func save(cfg *OutputConfig, result *pipeline.Result, logger *zap.Logger) error {
	if cfg == nil {
		cfg = &OutputConfig{}
	}

	if cfg.JSON != "" {
		if err := output.WriteJSON(cfg.JSON, result); err != nil {
			return err
		}
		logger.Info("results saved", zap.String("format", "json"), zap.String("filename", cfg.JSON))
	}

	if cfg.CSV != "" {
		if err := output.WriteCSV(cfg.CSV, result); err != nil {
			return err
		}
		logger.Info("results saved", zap.String("format", "csv"), zap.String("filename", cfg.CSV))
	}

	logger.Info("finished",
		zap.Bool("success", result.Success),
		zap.Int("scraped", result.JobsScraped),
		zap.Int("kept", result.JobsFiltered),
	)
	return nil
}

func newLogger(command string) *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return logger.WithRun(l, uuid.NewString(), command)
}

func loadConfig(logger *zap.Logger) *Config {
	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the job-scraper", zap.String("version", version))

	// secrets must not end up in debug output
	redacted := *config
	if redacted.Firecrawl != nil {
		fc := *redacted.Firecrawl
		if fc.APIKey != "" {
			fc.APIKey = "***"
		}
		redacted.Firecrawl = &fc
	}
	pretty, _ := json.MarshalIndent(redacted, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.Fetch == nil {
		config.Fetch = &FetchConfig{}
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}

	return config
}

func pipelineConfig(config *Config) *pipeline.Config {
	return &pipeline.Config{
		URLs:    config.URLs,
		Sources: config.Sources,
		Fetch:   config.Fetch.BatchConfig,
	}
}

func newFetcher(config *Config, l *zap.Logger) (fetcher.Fetcher, error) {
	provider := strings.TrimSpace(strings.ToLower(config.Fetch.Provider))
	fetchLogger := logger.WithFields(l, logger.StringFields(logger.StringField{Key: logger.FieldFetcher, Value: provider})...)

	switch provider {
	case "", fetcher.ProviderFirecrawl:
		fc := config.Firecrawl
		if fc == nil {
			fc = &FirecrawlConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "firecrawl api key",
			Value: fc.APIKey,
			File:  fc.APIKeyFile,
		})
		if err != nil {
			return nil, err
		}

		timeout := fc.Timeout
		if timeout <= 0 {
			timeout = config.Fetch.Timeout
		}

		client := firecrawl.New(fetchLogger, apiKey, timeout)
		if fc.BaseURL != "" {
			client = client.WithBaseURL(fc.BaseURL)
		}
		return client, nil
	case fetcher.ProviderDirect:
		return fetcher.NewDirect(fetchLogger, config.Fetch.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported fetch provider: %s", config.Fetch.Provider)
	}
}

func prepareFilters(ctx context.Context, config *Config, logger *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewCriteria(config.Criteria, logger),
	}

	aiFilter, err := prepareAIFilter(ctx, config.AI, logger)
	filters := filtering.New(append(steps, aiFilter), logger)
	if err != nil {
		logger.Warn("skipping AI filter", zap.Error(err))
		filters.DisableByName(aiFilter.Name(), err.Error())
	}

	return filters
}

func prepareAIFilter(ctx context.Context, config *AIConfig, logger *zap.Logger) (filtering.Filter, error) {
	if config == nil || !config.Enabled {
		return filtering.NewAIFit(&filtering.AIFitFilterConfig{Enabled: false}, nil), nil
	}

	aiConfig := &filtering.AIFitFilterConfig{
		Enabled:         config.Enabled,
		Provider:        config.Provider,
		MinimumFitScore: config.MinimumFitScore,
	}
	unusable := filtering.NewAIFit(aiConfig, nil)

	if config.Gemini == nil {
		return unusable, errors.New("gemini configuration is required when ai filter is enabled")
	}
	aiConfig.Gemini = &filtering.AIGeminiConfig{
		Model:        config.Gemini.Model,
		MaxLogLength: config.Gemini.MaxLogLength,
	}

	profile, err := secrets.Load(secrets.Source{
		Name:  "candidate profile",
		Value: config.Profile,
		File:  config.ProfileFile,
	})
	if err != nil {
		return unusable, fmt.Errorf("%w (set ai.profile or ai.profile-file)", err)
	}

	matcher, err := newAIMatcher(ctx, config, logger)
	if err != nil {
		return unusable, fmt.Errorf("building ai matcher: %w", err)
	}

	return filtering.NewAIFit(aiConfig, &filtering.AIFitFilterDeps{
		Logger:  logger,
		Matcher: matcher,
		Profile: profile,
	}), nil
}

func newAIMatcher(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.Matcher, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		return nil, err
	}

	minScore := max(cfg.MinimumFitScore, 0)

	matcherLogger := logger.WithAI(l, "gemini", generator.Model()).With(
		zap.Float64("minimum_fit_score", minScore),
	)

	return gemini.NewMatcher(generator, matcherLogger, minScore, cfg.Gemini.MaxLogLength), nil
}
