package jobs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPosting is returned when a candidate cannot become a Posting.
var ErrInvalidPosting = errors.New("invalid job posting")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Posting is a candidate that passed mandatory-field and format checks.
// Every field is populated: enums and currency carry defaults when the source had none.
type Posting struct {
	Title       string     `json:"title" validate:"required"`
	Company     string     `json:"company" validate:"required"`
	SalaryMin   *string    `json:"salary_min"`
	SalaryMax   *string    `json:"salary_max"`
	Currency    string     `json:"salary_currency" validate:"required"`
	Location    string     `json:"location" validate:"required"`
	RemoteType  RemoteType `json:"remote_type" validate:"oneof=remote hybrid on-site"`
	JobType     JobType    `json:"job_type" validate:"oneof=full-time part-time contract freelance"`
	Skills      []string   `json:"skills_required"`
	Description string     `json:"description"`
	URL         string     `json:"job_url" validate:"required,url"`
	PostedDate  string     `json:"posted_date,omitempty"`
	CompanyURL  string     `json:"company_url,omitempty" validate:"omitempty,url"`
}

// Validate builds a Posting from the candidate. Empty salary strings become null.
func (c *Candidate) Validate() (*Posting, error) {
	p := &Posting{
		Title:       c.Title,
		Company:     c.Company,
		SalaryMin:   nonEmpty(c.SalaryMin),
		SalaryMax:   nonEmpty(c.SalaryMax),
		Currency:    c.Currency,
		Location:    c.Location,
		RemoteType:  c.EffectiveRemoteType(),
		JobType:     c.EffectiveJobType(),
		Skills:      append([]string{}, c.Skills...),
		Description: c.Description,
		URL:         c.URL,
		PostedDate:  c.PostedDate,
		CompanyURL:  c.CompanyURL,
	}

	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}

	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidPosting, c.URL, describe(err))
	}

	return p, nil
}

// Text is the lowercase concatenation of title, description and skills.
func (p *Posting) Text() string {
	return SearchableText(p.Title, p.Description, p.Skills)
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func nonEmpty(s *string) *string {
	if !present(s) {
		return nil
	}
	v := *s
	return &v
}
