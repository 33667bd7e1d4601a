package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/job-scraper/internal/jobs"
)

var (
	integerRe = regexp.MustCompile(`\d+`)
	dollarRe  = regexp.MustCompile(`\$[\d,]+`)
	// amountRe matches bare figures such as "70,000" or "85k".
	amountRe = regexp.MustCompile(`(?i)\b(\d[\d,]*)(k)?\b`)
)

// minBareAmount is the smallest bare figure read as a yearly salary. Smaller
// numbers on a salary line are day counts, years or headcounts.
const minBareAmount = 10000

// ParseSalary extracts salary bounds from a captured salary line.
//
// Hourly text yields the first integer as "<n>/hr" in min so the unit marker
// reaches the filter. Otherwise dollar amounts are taken as annual min/max.
// Without a dollar amount only bare figures of at least 10,000 (or "85k")
// count; "25 days PTO" or "reviewed in 2025" yield nil bounds.
func ParseSalary(text string) (minimum, maximum *string) {
	if !integerRe.MatchString(text) {
		return nil, nil
	}

	if jobs.HourlyIndicated(text) {
		rate := integerRe.FindString(text)
		return jobs.StringPtr(rate + "/hr"), nil
	}

	cleaned := cleanAmounts(dollarRe.FindAllString(text, 2))
	if len(cleaned) == 0 {
		cleaned = bareAmounts(text)
	}

	switch len(cleaned) {
	case 0:
		return nil, nil
	case 1:
		return jobs.StringPtr(cleaned[0]), nil
	default:
		return jobs.StringPtr(cleaned[0]), jobs.StringPtr(cleaned[1])
	}
}

func cleanAmounts(amounts []string) []string {
	cleaned := make([]string, 0, len(amounts))
	for _, a := range amounts {
		a = strings.NewReplacer("$", "", ",", "").Replace(a)
		if a != "" {
			cleaned = append(cleaned, a)
		}
	}
	return cleaned
}

func bareAmounts(text string) []string {
	amounts := make([]string, 0, 2)
	for _, m := range amountRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		if m[2] != "" {
			n *= 1000
		}
		if n < minBareAmount {
			continue
		}
		amounts = append(amounts, strconv.Itoa(n))
		if len(amounts) == 2 {
			break
		}
	}
	return amounts
}
