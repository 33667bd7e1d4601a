package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-scraper/internal/jobs"
)

type criteriaFilter struct {
	criteria *Criteria
	logger   *zap.Logger
}

// NewCriteria creates the step that drops candidates not matching the operator criteria.
func NewCriteria(criteria *Criteria, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &criteriaFilter{criteria: criteria, logger: logger}
}

func (f *criteriaFilter) Name() string { return "criteria" }

func (f *criteriaFilter) Disable(string) {}

func (f *criteriaFilter) IsEnabled() bool { return true }

func (f *criteriaFilter) Validate() error {
	return f.criteria.Validate()
}

func (f *criteriaFilter) Apply(_ context.Context, c *jobs.Candidates) (*jobs.Candidates, Step, error) {
	initial := c.Len()
	rejections := make(map[string]int)

	kept, dropped := c.Keep(func(candidate *jobs.Candidate) bool {
		reason := Rejection(candidate, f.criteria)
		if reason == "" {
			return true
		}
		rejections[reason]++
		f.logger.Debug("candidate rejected",
			zap.String("url", candidate.URL),
			zap.String("title", candidate.Title),
			zap.String("check", reason),
		)
		return false
	})

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: kept.Len(), Rejections: rejections}, nil
}

func (f *criteriaFilter) Status() Status {
	details := map[string]string{}
	if f.criteria != nil {
		details["keywords"] = strings.Join(f.criteria.Keywords, ",")
		details["remote_only"] = strconv.FormatBool(f.criteria.RemoteOnly)
		if len(f.criteria.ExcludeLocations) > 0 {
			details["exclude_locations"] = strings.Join(f.criteria.ExcludeLocations, ",")
		}
		if len(f.criteria.IncludeLocations) > 0 {
			details["include_locations"] = strings.Join(f.criteria.IncludeLocations, ",")
		}
		details["hourly_rate"] = fmt.Sprintf("%.2f-%.2f", f.criteria.MinHourlyRate, f.criteria.MaxHourlyRate)
		types := make([]string, 0, len(f.criteria.JobTypes))
		for _, t := range f.criteria.JobTypes {
			types = append(types, string(t))
		}
		details["job_types"] = strings.Join(types, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
