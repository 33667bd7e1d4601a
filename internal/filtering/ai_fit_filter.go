package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-scraper/internal/ai"
	"github.com/spigell/job-scraper/internal/jobs"
)

type aiFitFilter struct {
	enabled bool
	reason  string
	config  *AIFitFilterConfig
	deps    *AIFitFilterDeps
}

type AIFitFilterDeps struct {
	Logger  *zap.Logger
	Matcher ai.Matcher
	Profile string
}

type AIFitFilterConfig struct {
	Enabled         bool
	Provider        string
	MinimumFitScore float64
	Gemini          *AIGeminiConfig
}

// AIGeminiConfig stores Gemini provider configuration.
type AIGeminiConfig struct {
	Model        string
	MaxLogLength int
}

// NewAIFit creates the AI-based filtering step.
func NewAIFit(cfg *AIFitFilterConfig, deps *AIFitFilterDeps) Filter {
	if cfg == nil {
		cfg = &AIFitFilterConfig{}
	}

	return &aiFitFilter{
		enabled: cfg.Enabled,
		deps:    deps,
		config:  cfg,
	}
}

func (f *aiFitFilter) Name() string { return "ai_fit" }

func (f *aiFitFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *aiFitFilter) IsEnabled() bool { return f.enabled }

func (f *aiFitFilter) Validate() error {
	if f.deps == nil || f.deps.Matcher == nil {
		return fmt.Errorf("deps are not initialized: filter is not usable")
	}
	if f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if strings.TrimSpace(f.deps.Profile) == "" {
		return fmt.Errorf("profile is required when ai filter is enabled")
	}
	if f.config.Gemini == nil {
		return fmt.Errorf("gemini configuration is required when ai filter is enabled")
	}
	if strings.TrimSpace(f.config.Gemini.Model) == "" {
		return fmt.Errorf("gemini model is required when ai filter is enabled")
	}
	return nil
}

// Apply keeps candidates the matcher approves. Evaluation errors keep the candidate.
func (f *aiFitFilter) Apply(ctx context.Context, c *jobs.Candidates) (*jobs.Candidates, Step, error) {
	initial := c.Len()
	rejections := make(map[string]int)

	kept, dropped := c.Keep(func(candidate *jobs.Candidate) bool {
		assessment, err := f.deps.Matcher.Evaluate(ctx, f.deps.Profile, candidate)
		if err != nil {
			f.deps.Logger.Warn("AI evaluation failed, keeping candidate",
				zap.String("url", candidate.URL),
				zap.Error(err),
			)
			rejections["evaluation_error_kept"]++
			return true
		}

		if !assessment.Fit {
			f.deps.Logger.Info("candidate rejected by AI provider",
				zap.String("url", candidate.URL),
				zap.Float64("ai_score", assessment.Score),
				zap.String("reason", assessment.Reason),
			)
			rejections["not_fit"]++
			return false
		}

		f.deps.Logger.Info("candidate approved by AI",
			zap.String("url", candidate.URL),
			zap.Float64("ai_score", assessment.Score),
		)
		return true
	})

	f.deps.Logger.Info("AI filtering completed",
		zap.Int("initial_candidates", initial),
		zap.Int("approved_candidates", kept.Len()),
	)

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: kept.Len(), Rejections: rejections}, nil
}

func (f *aiFitFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		details["minimum_fit_score"] = fmt.Sprintf("%.2f", f.config.MinimumFitScore)
		if f.config.Gemini != nil {
			details["model"] = f.config.Gemini.Model
			details["max_log_length"] = strconv.Itoa(f.config.Gemini.MaxLogLength)
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
