// Package jobs holds the job posting data model shared by every pipeline stage.
package jobs

import "strings"

type RemoteType string

type JobType string

const (
	RemoteTypeRemote RemoteType = "remote"
	RemoteTypeHybrid RemoteType = "hybrid"
	RemoteTypeOnSite RemoteType = "on-site"

	JobTypeFullTime  JobType = "full-time"
	JobTypePartTime  JobType = "part-time"
	JobTypeContract  JobType = "contract"
	JobTypeFreelance JobType = "freelance"

	DefaultRemoteType = RemoteTypeRemote
	DefaultJobType    = JobTypeFullTime
	DefaultCurrency   = "USD"
)

// Candidate is a job posting in its raw, best-effort-extracted form.
// Empty strings mean the value is unknown; nil salary bounds mean null.
type Candidate struct {
	Title       string
	Company     string
	Location    string
	RemoteType  RemoteType
	JobType     JobType
	SalaryMin   *string
	SalaryMax   *string
	Currency    string
	Skills      []string
	Description string
	URL         string
	PostedDate  string
	CompanyURL  string
}

// NewCandidate returns a candidate for the given source URL with the default
// remote type, job type and currency already applied.
func NewCandidate(url string) Candidate {
	return Candidate{
		URL:        url,
		RemoteType: DefaultRemoteType,
		JobType:    DefaultJobType,
		Currency:   DefaultCurrency,
	}
}

// HasMandatoryFields reports whether title, company, location and url are all set.
func (c *Candidate) HasMandatoryFields() bool {
	return c.Title != "" && c.Company != "" && c.Location != "" && c.URL != ""
}

// EffectiveJobType returns the job type, falling back to the default when unset.
func (c *Candidate) EffectiveJobType() JobType {
	if c.JobType == "" {
		return DefaultJobType
	}
	return c.JobType
}

// EffectiveRemoteType returns the remote type, falling back to the default when unset.
func (c *Candidate) EffectiveRemoteType() RemoteType {
	if c.RemoteType == "" {
		return DefaultRemoteType
	}
	return c.RemoteType
}

// HasSalary reports whether at least one salary bound carries a value.
func (c *Candidate) HasSalary() bool {
	return present(c.SalaryMin) || present(c.SalaryMax)
}

// Text is the lowercase concatenation of title, description and skills used for keyword checks.
func (c *Candidate) Text() string {
	return SearchableText(c.Title, c.Description, c.Skills)
}

// SearchableText joins the keyword-searchable fields of a posting in lowercase.
func SearchableText(title, description string, skills []string) string {
	return strings.ToLower(strings.Join([]string{title, description, strings.Join(skills, " ")}, " "))
}

// ValidJobType reports whether t is one of the known job types.
func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance:
		return true
	default:
		return false
	}
}

// ValidRemoteType reports whether t is one of the known remote types.
func ValidRemoteType(t RemoteType) bool {
	switch t {
	case RemoteTypeRemote, RemoteTypeHybrid, RemoteTypeOnSite:
		return true
	default:
		return false
	}
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed value or an empty string for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func present(s *string) bool {
	return s != nil && *s != ""
}
