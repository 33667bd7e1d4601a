package cmd

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-scraper/internal/fetcher"
	"github.com/spigell/job-scraper/internal/filtering"
	"github.com/spigell/job-scraper/internal/pipeline"
)

const (
	app = "job-scraper"
)

type Config struct {
	Target    int                 `mapstructure:"target"`
	URLs      []string            `mapstructure:"urls"`
	Sources   []pipeline.Source   `mapstructure:"sources"`
	Criteria  *filtering.Criteria `mapstructure:"criteria"`
	Firecrawl *FirecrawlConfig    `mapstructure:"firecrawl"`
	Fetch     *FetchConfig        `mapstructure:"fetch"`
	Output    *OutputConfig       `mapstructure:"output"`
	AI        *AIConfig           `mapstructure:"ai"`
}

type FirecrawlConfig struct {
	APIKey     string        `mapstructure:"api-key"`
	APIKeyFile string        `mapstructure:"api-key-file"`
	BaseURL    string        `mapstructure:"base-url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type FetchConfig struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`

	fetcher.BatchConfig `mapstructure:",squash"`
}

type OutputConfig struct {
	JSON string `mapstructure:"json"`
	CSV  string `mapstructure:"csv"`
}

type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider"`
	MinimumFitScore float64       `mapstructure:"minimum-fit-score"`
	Profile         string        `mapstructure:"profile"`
	ProfileFile     string        `mapstructure:"profile-file"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string  `mapstructure:"api-key-file"`
	Model        string  `mapstructure:"model"`
	Temperature  float32 `mapstructure:"temperature"`
	MaxLogLength int     `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-scraper collects remote job postings, filters them by your criteria and ranks them by relevance",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"firecrawl.api-key":      "FIRECRAWL_API_KEY",
		"firecrawl.api-key-file": "FIRECRAWL_API_KEY_FILE",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-scraper.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// setDefaults mirrors the search the tool was first written for: remote
// Node.js, TypeScript and AI roles paying 15-20 USD per hour.
func setDefaults(v *viper.Viper) {
	v.SetDefault("target", 50)

	v.SetDefault("sources", []map[string]any{
		{
			"name":    "remoteok",
			"queries": []string{"site:remoteok.io remote nodejs jobs", "site:remoteok.io remote typescript jobs", "site:remoteok.io remote ai jobs"},
			"limit":   30,
		},
		{
			"name":    "weworkremotely",
			"queries": []string{"Node.js developer remote", "JavaScript developer remote", "TypeScript developer remote", "AI engineer remote"},
			"limit":   30,
		},
		{
			"name":    "github",
			"queries": []string{"GitHub remote NodeJS jobs", "GitHub remote JavaScript jobs", "GitHub remote developer jobs"},
			"limit":   30,
		},
	})

	v.SetDefault("criteria.keywords", []string{"nodejs", "node.js", "javascript", "typescript", "ai", "artificial intelligence"})
	v.SetDefault("criteria.remote-only", true)
	v.SetDefault("criteria.exclude-locations", []string{"India", "Indian"})
	v.SetDefault("criteria.include-locations", []string{"USA", "Canada", "Europe", "Australia", "UK", "Remote"})
	v.SetDefault("criteria.min-hourly-rate", 15)
	v.SetDefault("criteria.max-hourly-rate", 20)
	v.SetDefault("criteria.job-types", []string{"full-time", "part-time", "contract", "freelance"})

	v.SetDefault("firecrawl.timeout", "30s")

	v.SetDefault("fetch.provider", fetcher.ProviderFirecrawl)
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.batch-size", fetcher.DefaultBatchSize)
	v.SetDefault("fetch.batch-delay", fetcher.DefaultBatchDelay.String())

	v.SetDefault("output.json", "jobs.json")
	v.SetDefault("output.csv", "jobs.csv")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
}

func initConfig() {
	// Config is needed only for commands that run the pipeline.
	if runCmd.CalledAs() == "" && sampleCmd.CalledAs() == "" {
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		// Defaults are enough to run without a config file, but an explicit or broken one must load.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
