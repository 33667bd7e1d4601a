package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-scraper/internal/filtering"
	"github.com/spigell/job-scraper/internal/jobs"
)

const posting = `# Senior Backend Engineer
Job Title: Senior Node.js Developer
Company: TechCorp Inc
Company URL: https://techcorp.com
Location: Toronto, Canada
Salary: $90,000 - $130,000 per year
We use TypeScript and React on the frontend.
Python is a plus.
Apply now.`

func TestNormalizeExtractsFields(t *testing.T) {
	c := Normalize(posting, "https://remoteok.io/jobs/42")

	assert.Equal(t, "Senior Node.js Developer", c.Title)
	assert.Equal(t, "TechCorp Inc", c.Company)
	assert.Equal(t, "Toronto, Canada", c.Location)
	assert.Equal(t, "https://remoteok.io/jobs/42", c.URL)
	assert.Equal(t, jobs.RemoteTypeRemote, c.RemoteType)
	assert.Equal(t, jobs.JobTypeFullTime, c.JobType)
	assert.Equal(t, "USD", c.Currency)

	require.NotNil(t, c.SalaryMin)
	require.NotNil(t, c.SalaryMax)
	assert.Equal(t, "90000", *c.SalaryMin)
	assert.Equal(t, "130000", *c.SalaryMax)

	assert.Equal(t, []string{
		"Job Title: Senior Node.js Developer",
		"We use TypeScript and React on the frontend.",
		"Python is a plus.",
	}, c.Skills)
}

func TestNormalizeEmptyTextUsesDefaults(t *testing.T) {
	c := Normalize("", "https://example.com/job")

	assert.Equal(t, DefaultTitle, c.Title)
	assert.Equal(t, DefaultCompany, c.Company)
	assert.Equal(t, DefaultLocation, c.Location)
	assert.Equal(t, jobs.RemoteTypeRemote, c.RemoteType)
	assert.Equal(t, jobs.JobTypeFullTime, c.JobType)
	assert.Equal(t, "https://example.com/job", c.URL)
	assert.Nil(t, c.SalaryMin)
	assert.Nil(t, c.SalaryMax)
	assert.Empty(t, c.Skills)
	assert.Empty(t, c.Description)
	assert.True(t, c.HasMandatoryFields())
}

func TestNormalizeFirstMatchWins(t *testing.T) {
	raw := "Title: First\nTitle: Second\nLocation: Berlin\nBased in: Paris"
	c := Normalize(raw, "https://example.com")

	assert.Equal(t, "First", c.Title)
	assert.Equal(t, "Berlin", c.Location)
}

func TestNormalizePlaceholdersForEmptyLabels(t *testing.T) {
	raw := "Job Title:\nCompany:\nLocation:"
	c := Normalize(raw, "https://example.com")

	assert.Equal(t, "Job Opening", c.Title)
	assert.Equal(t, "TechCompany", c.Company)
	assert.Equal(t, "Remote", c.Location)
}

func TestNormalizeCompanyURLLineIsNotCompany(t *testing.T) {
	raw := "Company URL: https://acme.dev\nHiring Company: Acme"
	c := Normalize(raw, "https://example.com")

	assert.Equal(t, "Acme", c.Company)
}

func TestNormalizeKeepsColonsInValue(t *testing.T) {
	c := Normalize("Title: Engineer: Platform", "https://example.com")
	assert.Equal(t, "Engineer: Platform", c.Title)
}

func TestNormalizeDescriptionIsCapped(t *testing.T) {
	line := strings.Repeat("x", 150)
	raw := strings.Join([]string{line, line, line, line}, "\n")

	c := Normalize(raw, "https://example.com")

	// two lines are accumulated before the 200 character budget is reached
	assert.Equal(t, line+" "+line, c.Description)

	long := strings.Repeat("y", 900)
	c = Normalize(long, "https://example.com")
	assert.Len(t, []rune(c.Description), maxDescription-1)
}

func TestNormalizeDescriptionBudgetCountsCharacters(t *testing.T) {
	line := strings.Repeat("é", 150)
	raw := strings.Join([]string{line, line, line}, "\n")

	c := Normalize(raw, "https://example.com")

	assert.Equal(t, line+" "+line, c.Description)
}

func TestNormalizeSalaryLineWithoutAmount(t *testing.T) {
	for _, salary := range []string{"Salary: competitive, 25 days PTO", "Salary: Competitive, reviewed in 2025"} {
		raw := strings.Join([]string{
			"Job Title: Node.js Developer",
			"Company: Acme",
			"Location: Remote",
			salary,
		}, "\n")

		c := Normalize(raw, "https://example.com/job/1")

		assert.Nil(t, c.SalaryMin, salary)
		assert.Nil(t, c.SalaryMax, salary)
		assert.True(t, filtering.SalaryInRange(c.SalaryMin, c.SalaryMax, 15, 20), "missing salary must not reject: %s", salary)
	}
}

func TestNormalizeSkillsKeepDuplicates(t *testing.T) {
	raw := "react\nreact\nGo only"
	c := Normalize(raw, "https://example.com")
	assert.Equal(t, []string{"react", "react"}, c.Skills)
}
