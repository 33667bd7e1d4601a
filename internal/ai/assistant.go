package ai

import (
	"context"

	"github.com/spigell/job-scraper/internal/jobs"
)

type FitAssessment struct {
	Fit    bool
	Score  float64
	Reason string
	Raw    string
}

// Matcher judges whether a candidate suits the operator profile.
type Matcher interface {
	Evaluate(ctx context.Context, profile string, candidate *jobs.Candidate) (*FitAssessment, error)
}
