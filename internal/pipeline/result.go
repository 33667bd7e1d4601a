package pipeline

import (
	"time"

	"github.com/spigell/job-scraper/internal/jobs"
)

// TimestampLayout renders UTC times with millisecond precision and a Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Result is the outcome of one run.
type Result struct {
	Success bool `json:"success"`
	// JobsScraped counts candidates produced by fetching, before any filtering.
	JobsScraped int `json:"jobsScraped"`
	// JobsFiltered counts the postings kept in Jobs.
	JobsFiltered int             `json:"jobsFiltered"`
	Jobs         []*jobs.Posting `json:"jobs"`
	Errors       []string        `json:"errors"`
	Timestamp    string          `json:"timestamp"`
}

// newResult builds the envelope. A run that hit fatal is still successful
// when it kept at least one posting.
func newResult(scraped int, postings []*jobs.Posting, fatal error, now time.Time) *Result {
	if postings == nil {
		postings = []*jobs.Posting{}
	}
	errs := []string{}
	if fatal != nil {
		errs = append(errs, fatal.Error())
	}

	return &Result{
		Success:      fatal == nil || len(postings) > 0,
		JobsScraped:  scraped,
		JobsFiltered: len(postings),
		Jobs:         postings,
		Errors:       errs,
		Timestamp:    now.UTC().Format(TimestampLayout),
	}
}

// Postings wraps the result jobs for reporting helpers.
func (r *Result) Postings() *jobs.Postings {
	return &jobs.Postings{Items: r.Jobs}
}
