package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/job-scraper/internal/fetcher"
	"github.com/spigell/job-scraper/internal/filtering"
	"github.com/spigell/job-scraper/internal/firecrawl"
	"github.com/spigell/job-scraper/internal/jobs"
	"github.com/spigell/job-scraper/internal/pipeline"
	"github.com/spigell/job-scraper/internal/sample"
	"github.com/spigell/job-scraper/internal/secrets"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()

	v := viper.New()
	setDefaults(v)

	var config *Config
	require.NoError(t, v.Unmarshal(&config))
	return config
}

func TestDefaults(t *testing.T) {
	config := defaultConfig(t)

	assert.Equal(t, 50, config.Target)
	require.Len(t, config.Sources, 3)
	assert.Equal(t, "remoteok", config.Sources[0].Name)
	assert.Equal(t, 30, config.Sources[1].Limit)
	assert.Len(t, config.Sources[1].Queries, 4)

	require.NotNil(t, config.Criteria)
	require.NoError(t, config.Criteria.Validate())
	assert.True(t, config.Criteria.RemoteOnly)
	assert.Equal(t, []string{"India", "Indian"}, config.Criteria.ExcludeLocations)
	assert.InDelta(t, 15, config.Criteria.MinHourlyRate, 0)
	assert.InDelta(t, 20, config.Criteria.MaxHourlyRate, 0)
	assert.Len(t, config.Criteria.JobTypes, 4)

	require.NotNil(t, config.Fetch)
	assert.Equal(t, fetcher.ProviderFirecrawl, config.Fetch.Provider)
	assert.Equal(t, 30*time.Second, config.Fetch.Timeout)
	assert.Equal(t, fetcher.BatchConfig{Size: 5, Delay: 2 * time.Second}, config.Fetch.BatchConfig)

	assert.Equal(t, &OutputConfig{JSON: "jobs.json", CSV: "jobs.csv"}, config.Output)

	require.NotNil(t, config.AI)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-2.5-flash", config.AI.Gemini.Model)
}

func TestNewFetcher(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(keyFile, []byte(" fc-secret \n"), 0o600))

	tests := []struct {
		name          string
		fetch         *FetchConfig
		fc            *FirecrawlConfig
		check         func(t *testing.T, f fetcher.Fetcher)
		wantErr       bool
		notConfigured bool
	}{
		{
			name:  "firecrawl with inline key and base url",
			fetch: &FetchConfig{Provider: "firecrawl"},
			fc:    &FirecrawlConfig{APIKey: "fc-inline", BaseURL: "http://localhost:3002/v2/"},
			check: func(t *testing.T, f fetcher.Fetcher) {
				client, ok := f.(*firecrawl.Client)
				require.True(t, ok)
				assert.Equal(t, "http://localhost:3002/v2", client.APIURL)
			},
		},
		{
			name:  "firecrawl key file and fetch timeout",
			fetch: &FetchConfig{Provider: " Firecrawl ", Timeout: 5 * time.Second},
			fc:    &FirecrawlConfig{APIKeyFile: keyFile},
			check: func(t *testing.T, f fetcher.Fetcher) {
				client, ok := f.(*firecrawl.Client)
				require.True(t, ok)
				assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)
			},
		},
		{name: "firecrawl without a key", fetch: &FetchConfig{Provider: "firecrawl"}, wantErr: true, notConfigured: true},
		{
			name:  "direct",
			fetch: &FetchConfig{Provider: "direct"},
			check: func(t *testing.T, f fetcher.Fetcher) {
				_, ok := f.(*fetcher.Direct)
				assert.True(t, ok)
			},
		},
		{name: "unknown provider", fetch: &FetchConfig{Provider: "puppeteer"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := newFetcher(&Config{Fetch: tt.fetch, Firecrawl: tt.fc}, zap.NewNop())
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.notConfigured, errors.Is(err, secrets.ErrNotConfigured))
				return
			}
			require.NoError(t, err)
			tt.check(t, f)
		})
	}
}

func TestPrepareFiltersDisablesUnusableAI(t *testing.T) {
	config := defaultConfig(t)
	config.AI.Enabled = true
	config.AI.Profile = ""

	filters := prepareFilters(context.Background(), config, zap.NewNop())
	statuses := filters.Describe()

	require.Len(t, statuses, 2)
	assert.Equal(t, "criteria", statuses[0].Name)
	assert.True(t, statuses[0].Enabled)
	assert.Equal(t, "ai_fit", statuses[1].Name)
	assert.False(t, statuses[1].Enabled)
	assert.Contains(t, statuses[1].Reason, "candidate profile")
}

func TestPrepareFiltersWithoutAI(t *testing.T) {
	config := defaultConfig(t)

	filters := prepareFilters(context.Background(), config, zap.NewNop())

	c := jobs.NewCandidate("https://remoteok.io/jobs/1")
	c.Title = "Node.js Developer"
	c.Company = "Acme"
	c.Location = "Remote"

	out, err := filters.RunFilters(context.Background(), jobs.NewCandidates([]jobs.Candidate{c}))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
}

func testResult() *pipeline.Result {
	posting := &jobs.Posting{
		Title:      "Node.js Developer",
		Company:    "Acme",
		Location:   "Remote",
		URL:        "https://remoteok.io/jobs/1",
		JobType:    jobs.JobTypeFullTime,
		RemoteType: jobs.RemoteTypeRemote,
		Skills:     []string{"Node.js"},
	}
	return &pipeline.Result{
		Success:      true,
		JobsScraped:  3,
		JobsFiltered: 1,
		Jobs:         []*jobs.Posting{posting},
		Errors:       []string{},
		Timestamp:    "2026-10-19T10:00:00.000Z",
	}
}

func TestHandleAction(t *testing.T) {
	dir := t.TempDir()
	config := &Config{Output: &OutputConfig{
		JSON: filepath.Join(dir, "jobs.json"),
		CSV:  filepath.Join(dir, "jobs.csv"),
	}}
	result := testResult()

	require.NoError(t, handleAction(PromptReportByCompany, config, result, zap.NewNop()))
	assert.ErrorIs(t, handleAction(PromptExit, config, result, zap.NewNop()), errExit)
	assert.Error(t, handleAction("unknown", config, result, zap.NewNop()))

	_, err := os.Stat(config.Output.JSON)
	assert.True(t, os.IsNotExist(err), "exit must not save")

	assert.ErrorIs(t, handleAction(PromptSave, config, result, zap.NewNop()), errExit)

	data, err := os.ReadFile(config.Output.JSON)
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, true, saved["success"])
	assert.EqualValues(t, 1, saved["jobsFiltered"])

	csv, err := os.ReadFile(config.Output.CSV)
	require.NoError(t, err)
	assert.Contains(t, string(csv), `"Node.js Developer","Acme"`)
}

func TestSaveSkipsEmptyPaths(t *testing.T) {
	require.NoError(t, save(&OutputConfig{}, testResult(), zap.NewNop()))
	require.NoError(t, save(nil, testResult(), zap.NewNop()))
}

func TestCriteriaFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job-scraper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
target: 10
urls:
  - https://example.com/job/1
criteria:
  keywords: [golang]
  remote-only: false
  min-hourly-rate: 40
  max-hourly-rate: 0
  job-types: [contract]
fetch:
  provider: direct
  batch-delay: 500ms
`), 0o600))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var config *Config
	require.NoError(t, v.Unmarshal(&config))

	assert.Equal(t, 10, config.Target)
	assert.Equal(t, []string{"https://example.com/job/1"}, config.URLs)
	assert.Equal(t, &filtering.Criteria{
		Keywords:         []string{"golang"},
		RemoteOnly:       false,
		ExcludeLocations: []string{"India", "Indian"},
		IncludeLocations: []string{"USA", "Canada", "Europe", "Australia", "UK", "Remote"},
		MinHourlyRate:    40,
		JobTypes:         []jobs.JobType{jobs.JobTypeContract},
	}, config.Criteria)
	assert.Equal(t, fetcher.ProviderDirect, config.Fetch.Provider)
	assert.Equal(t, fetcher.BatchConfig{Size: 5, Delay: 500 * time.Millisecond}, config.Fetch.BatchConfig)
}

func TestSampleFixtureSurvivesDefaultCriteria(t *testing.T) {
	config := defaultConfig(t)
	logger := zap.NewNop()

	filters := filtering.New([]filtering.Filter{filtering.NewCriteria(config.Criteria, logger)}, logger)
	p := pipeline.New(pipelineConfig(config), nil, filters, config.Criteria.Keywords, logger)

	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	for seed := uint64(1); seed <= 5; seed++ {
		result := p.RunCandidates(context.Background(), sample.Generate(50, seed, now), config.Target)
		require.True(t, result.Success, "seed %d", seed)
		assert.NotEmpty(t, result.Jobs, "seed %d", seed)
	}
}
