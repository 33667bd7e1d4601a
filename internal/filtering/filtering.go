package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-scraper/internal/jobs"
)

// Filter represents a single filtering step applied to candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, c *jobs.Candidates) (*jobs.Candidates, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
	// Rejections counts dropped candidates per reason, when the step tracks them.
	Rejections map[string]int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Filtering{
		steps:  steps,
		logger: logger,
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func (f *Filtering) DisableByName(name, reason string) {
	for _, step := range f.steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// RunFilters validates every enabled step and then applies them sequentially.
func (f *Filtering) RunFilters(ctx context.Context, c *jobs.Candidates) (*jobs.Candidates, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		fields := []zap.Field{
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		}
		if len(info.Rejections) > 0 {
			fields = append(fields, zap.Any("rejections", info.Rejections))
		}
		f.logger.Info("filter step", fields...)

		c = next
	}

	return c, nil
}

// Describe returns status entries for the configured filters.
func (f *Filtering) Describe() []Status {
	statuses := make([]Status, 0, len(f.steps))
	for _, step := range f.steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
