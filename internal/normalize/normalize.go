// Package normalize turns loosely structured page text into job candidates.
package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/spigell/job-scraper/internal/jobs"
	"github.com/spigell/job-scraper/internal/utils"
)

const (
	DefaultTitle    = "Software Developer"
	DefaultCompany  = "Tech Company"
	DefaultLocation = "Remote"

	// descriptionBudget stops accumulating lines once reached; the result is then cut to maxDescription.
	descriptionBudget = 200
	maxDescription    = 500
)

// Normalize extracts a candidate from raw markdown-like text. It never fails:
// fields that cannot be found get their defaults and url is always kept.
func Normalize(raw, sourceURL string) jobs.Candidate {
	c := jobs.NewCandidate(sourceURL)

	found := make(map[field]string, len(rules))
	var description strings.Builder
	collected := 0 // characters, not bytes

	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)

		for _, r := range rules {
			if _, done := found[r.field]; done {
				continue
			}
			if r.match(line, lower) {
				found[r.field] = r.extract(line)
			}
		}

		if mentionsSkill(lower) {
			c.Skills = append(c.Skills, strings.TrimSpace(line))
		}

		if collected < descriptionBudget {
			description.WriteString(" ")
			description.WriteString(line)
			collected += 1 + utf8.RuneCountInString(line)
		}
	}

	c.Title = valueOr(found[fieldTitle], DefaultTitle)
	c.Company = valueOr(found[fieldCompany], DefaultCompany)
	c.Location = valueOr(found[fieldLocation], DefaultLocation)
	c.SalaryMin, c.SalaryMax = ParseSalary(found[fieldSalary])
	c.Description = strings.TrimSpace(utils.TruncateRunes(description.String(), maxDescription))

	return c
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
