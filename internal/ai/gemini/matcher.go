package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/job-scraper/internal/ai"
	"github.com/spigell/job-scraper/internal/jobs"
	"github.com/spigell/job-scraper/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, instruction, prompt string) (string, error)
}

type Matcher struct {
	generator contentGenerator
	minScore  float64
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	profilePlaceholder  = "{{PROFILE}}"
)

func NewMatcher(generator contentGenerator, logger *zap.Logger, minScore float64, maxLogLength int) *Matcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{
		generator: generator,
		minScore:  minScore,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// jobPayload is the subset of a candidate the model sees.
type jobPayload struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	RemoteType  string   `json:"remote_type"`
	JobType     string   `json:"job_type"`
	SalaryMin   *string  `json:"salary_min"`
	SalaryMax   *string  `json:"salary_max"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
}

func (m *Matcher) Evaluate(ctx context.Context, profile string, candidate *jobs.Candidate) (*ai.FitAssessment, error) {
	if strings.TrimSpace(profile) == "" {
		return nil, fmt.Errorf("profile is required")
	}
	if candidate == nil {
		return nil, fmt.Errorf("candidate is required")
	}

	payload, err := json.MarshalIndent(jobPayload{
		Title:       candidate.Title,
		Company:     candidate.Company,
		Location:    candidate.Location,
		RemoteType:  string(candidate.EffectiveRemoteType()),
		JobType:     string(candidate.EffectiveJobType()),
		SalaryMin:   candidate.SalaryMin,
		SalaryMax:   candidate.SalaryMax,
		Skills:      candidate.Skills,
		Description: candidate.Description,
		URL:         candidate.URL,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	instruction := buildInstruction(profile)
	prompt := string(payload)

	m.logger.Debug("gemini generate content request",
		zap.String("url", candidate.URL),
		zap.Int("instruction_length", utf8.RuneCountInString(instruction)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateContent(ctx, instruction, prompt)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("gemini generate content response",
		zap.String("url", candidate.URL),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, m.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if m.minScore > 0 && assessment.Score < m.minScore {
		m.logger.Debug("set fit to false by score threshold",
			zap.String("url", candidate.URL),
			zap.Float64("score", assessment.Score),
			zap.Float64("threshold", m.minScore),
		)
		assessment.Fit = false
	}

	assessment.Raw = raw
	return assessment, nil
}

func buildInstruction(profile string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate profile:\n" + profilePlaceholder + "\n\nReply with JSON {\"fit\", \"score\", \"reason\"}."
	}
	return strings.ReplaceAll(template, profilePlaceholder, strings.TrimSpace(profile))
}

func parseResponse(raw string) (*ai.FitAssessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}

	return &ai.FitAssessment{
		Fit:    coerceBool(data["fit"]),
		Score:  score,
		Reason: coerceString(data["reason"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}
