package normalize

import "strings"

type field int

const (
	fieldTitle field = iota
	fieldCompany
	fieldLocation
	fieldSalary
)

// rule detects a labelled line and extracts a field value from it.
// Rules are evaluated in order on every line; the first match wins per field.
type rule struct {
	field   field
	match   func(line, lower string) bool
	extract func(line string) string
}

var rules = []rule{
	{
		field: fieldTitle,
		match: func(line, _ string) bool {
			return strings.Contains(line, "Job Title") || strings.Contains(line, "Title")
		},
		extract: afterColon("Job Opening"),
	},
	{
		field: fieldCompany,
		match: func(line, _ string) bool {
			return strings.Contains(line, "Company") && !strings.Contains(line, "Company URL")
		},
		extract: afterColon("TechCompany"),
	},
	{
		field: fieldLocation,
		match: func(_, lower string) bool {
			return strings.Contains(lower, "location") || strings.Contains(lower, "based in")
		},
		extract: afterColon(DefaultLocation),
	},
	{
		field: fieldSalary,
		match: func(_, lower string) bool {
			return strings.Contains(lower, "salary") || strings.Contains(lower, "hourly") || strings.Contains(lower, "$")
		},
		extract: func(line string) string { return line },
	},
}

// skillTerms are the technologies that mark a line as a skills line.
var skillTerms = []string{"node", "javascript", "typescript", "react", "python"}

func mentionsSkill(lower string) bool {
	for _, term := range skillTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// afterColon returns the trimmed text after the first colon, or placeholder when it is empty.
func afterColon(placeholder string) func(string) string {
	return func(line string) string {
		_, value, _ := strings.Cut(line, ":")
		if value = strings.TrimSpace(value); value == "" {
			return placeholder
		}
		return value
	}
}
