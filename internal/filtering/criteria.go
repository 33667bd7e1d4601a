// Package filtering decides which job candidates match the operator's criteria.
package filtering

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/job-scraper/internal/jobs"
)

const (
	CheckRemoteType = "remote_type"
	CheckJobType    = "job_type"
	CheckLocation   = "location"
	CheckKeywords   = "keywords"
	CheckSalary     = "salary"
)

// Criteria is the operator-supplied filter specification. It must not be changed during a run.
// Salary bounds are hourly-equivalent rates; zero means the bound is not configured.
type Criteria struct {
	Keywords         []string       `mapstructure:"keywords" json:"keywords"`
	RemoteOnly       bool           `mapstructure:"remote-only" json:"remote_only"`
	ExcludeLocations []string       `mapstructure:"exclude-locations" json:"exclude_locations"`
	IncludeLocations []string       `mapstructure:"include-locations" json:"include_locations"`
	MinHourlyRate    float64        `mapstructure:"min-hourly-rate" json:"min_hourly_rate"`
	MaxHourlyRate    float64        `mapstructure:"max-hourly-rate" json:"max_hourly_rate"`
	JobTypes         []jobs.JobType `mapstructure:"job-types" json:"job_types"`
}

// Validate checks that the criteria can be used for filtering.
func (cr *Criteria) Validate() error {
	if cr == nil {
		return errors.New("criteria are required")
	}
	if len(cr.Keywords) == 0 {
		return errors.New("at least one keyword is required")
	}
	if len(cr.JobTypes) == 0 {
		return errors.New("at least one job type is required")
	}
	for _, t := range cr.JobTypes {
		if !jobs.ValidJobType(t) {
			return fmt.Errorf("unknown job type %q", t)
		}
	}
	if cr.MinHourlyRate < 0 || cr.MaxHourlyRate < 0 {
		return errors.New("hourly rate bounds must not be negative")
	}
	if cr.MinHourlyRate > 0 && cr.MaxHourlyRate > 0 && cr.MinHourlyRate > cr.MaxHourlyRate {
		return fmt.Errorf("min hourly rate %.2f is greater than max hourly rate %.2f", cr.MinHourlyRate, cr.MaxHourlyRate)
	}
	return nil
}

func (cr *Criteria) salaryConfigured() bool {
	return cr.MinHourlyRate != 0 || cr.MaxHourlyRate != 0
}

type check struct {
	name string
	pass func(c *jobs.Candidate, cr *Criteria) bool
}

// checks run in this order and stop at the first failure.
var checks = []check{
	{name: CheckRemoteType, pass: remoteTypeMatches},
	{name: CheckJobType, pass: jobTypeMatches},
	{name: CheckLocation, pass: locationMatches},
	{name: CheckKeywords, pass: keywordsMatch},
	{name: CheckSalary, pass: salaryMatches},
}

// Matches reports whether the candidate passes every check.
func Matches(c *jobs.Candidate, cr *Criteria) bool {
	return Rejection(c, cr) == ""
}

// Rejection returns the name of the first failing check, or "" when the candidate is accepted.
func Rejection(c *jobs.Candidate, cr *Criteria) string {
	for _, ch := range checks {
		if !ch.pass(c, cr) {
			return ch.name
		}
	}
	return ""
}

func remoteTypeMatches(c *jobs.Candidate, cr *Criteria) bool {
	return !cr.RemoteOnly || c.EffectiveRemoteType() == jobs.RemoteTypeRemote
}

func jobTypeMatches(c *jobs.Candidate, cr *Criteria) bool {
	want := c.EffectiveJobType()
	for _, t := range cr.JobTypes {
		if t == want {
			return true
		}
	}
	return false
}

// locationMatches applies exclusions first. Locations that are exactly "remote"
// bypass the include list.
func locationMatches(c *jobs.Candidate, cr *Criteria) bool {
	if c.Location == "" {
		return true
	}

	location := strings.ToLower(c.Location)
	if containsAny(location, cr.ExcludeLocations) {
		return false
	}

	if len(cr.IncludeLocations) > 0 && !containsAny(location, cr.IncludeLocations) && location != "remote" {
		return false
	}

	return true
}

func keywordsMatch(c *jobs.Candidate, cr *Criteria) bool {
	return containsAny(c.Text(), cr.Keywords)
}

func salaryMatches(c *jobs.Candidate, cr *Criteria) bool {
	if !cr.salaryConfigured() {
		return true
	}
	return SalaryInRange(c.SalaryMin, c.SalaryMax, cr.MinHourlyRate, cr.MaxHourlyRate)
}

// containsAny reports whether lowered text contains any non-empty term, case-insensitively.
func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
