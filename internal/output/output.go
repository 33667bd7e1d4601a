// Package output writes run results to disk.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/job-scraper/internal/jobs"
	"github.com/spigell/job-scraper/internal/pipeline"
	"github.com/spigell/job-scraper/internal/utils"
)

const descriptionWidth = 100

var csvHeader = []string{
	"Title",
	"Company",
	"Location",
	"Remote Type",
	"Job Type",
	"Salary Min",
	"Salary Max",
	"Skills",
	"Job URL",
	"Description",
}

// WriteJSON stores the whole result as indented JSON.
func WriteJSON(path string, result *pipeline.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteCSV stores the result postings as a flat table, see FormatCSV.
func WriteCSV(path string, result *pipeline.Result) error {
	if err := os.WriteFile(path, []byte(FormatCSV(result.Jobs)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FormatCSV renders postings in the table layout downstream tools read.
// Title, company, location, skills and description are quoted; only the
// description, cut to 100 characters, has its quotes doubled. Rows are
// separated by "\n" with no trailing newline.
func FormatCSV(postings []*jobs.Posting) string {
	lines := make([]string, 0, len(postings)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, p := range postings {
		lines = append(lines, strings.Join([]string{
			quote(p.Title),
			quote(p.Company),
			quote(p.Location),
			string(p.RemoteType),
			string(p.JobType),
			jobs.Deref(p.SalaryMin),
			jobs.Deref(p.SalaryMax),
			quote(strings.Join(p.Skills, ", ")),
			p.URL,
			quote(strings.ReplaceAll(utils.TruncateRunes(p.Description, descriptionWidth), `"`, `""`)),
		}, ","))
	}

	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + s + `"`
}
