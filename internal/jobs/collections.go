package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Candidates is an ordered list of candidates moving through the filter steps.
type Candidates struct {
	Items []*Candidate
}

// Postings is an ordered list of validated postings.
type Postings struct {
	Items []*Posting `json:"jobs"`
}

func NewCandidates(items []Candidate) *Candidates {
	c := &Candidates{Items: make([]*Candidate, 0, len(items))}
	for i := range items {
		c.Items = append(c.Items, &items[i])
	}
	return c
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

// Keep returns a new list with the candidates accepted by keep, preserving order,
// and the URLs of the dropped ones.
func (c *Candidates) Keep(keep func(*Candidate) bool) (*Candidates, []string) {
	kept := &Candidates{Items: make([]*Candidate, 0, len(c.Items))}
	var dropped []string
	for _, candidate := range c.Items {
		if keep(candidate) {
			kept.Items = append(kept.Items, candidate)
			continue
		}
		dropped = append(dropped, candidate.URL)
	}
	return kept, dropped
}

func (p *Postings) Len() int {
	return len(p.Items)
}

// DumpToTmpFile writes postings as indented JSON into a new temporary file and returns its name.
func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByCompany groups postings by company name for a quick operator overview.
func (p *Postings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, posting := range p.Items {
		report[posting.Company] = append(report[posting.Company], map[string]string{
			"title":    posting.Title,
			"url":      posting.URL,
			"location": posting.Location,
			"type":     fmt.Sprintf("%s / %s", posting.JobType, posting.RemoteType),
			"salary":   formatSalary(posting),
			"skills":   strings.Join(posting.Skills, ", "),
		})
	}
	return report
}

// UniqueURLs removes exact duplicates, keeping the first occurrence of each URL.
func UniqueURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		unique = append(unique, u)
	}
	return unique
}

func formatSalary(p *Posting) string {
	minimum, maximum := Deref(p.SalaryMin), Deref(p.SalaryMax)
	switch {
	case minimum == "" && maximum == "":
		return "unknown"
	case maximum == "":
		return fmt.Sprintf("%s %s", minimum, p.Currency)
	case minimum == "":
		return fmt.Sprintf("up to %s %s", maximum, p.Currency)
	default:
		return fmt.Sprintf("%s-%s %s", minimum, maximum, p.Currency)
	}
}
