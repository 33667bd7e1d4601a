package filtering

import (
	"strings"

	"github.com/spigell/job-scraper/internal/jobs"
)

// SalaryInRange applies the salary policy to a candidate's salary bounds.
//
// Missing salary data is accepted. Text marked as hourly is compared to
// [minHourly, maxHourly] using its first integer. Anything else is read as an
// annual figure (the larger of the two bounds) and converted to an hourly
// estimate which must fall in [minHourly, 2*maxHourly]. Bounds without any
// usable number are accepted. A zero maxHourly leaves the upper side open.
func SalaryInRange(salaryMin, salaryMax *string, minHourly, maxHourly float64) bool {
	minText, maxText := jobs.Deref(salaryMin), jobs.Deref(salaryMax)
	if minText == "" && maxText == "" {
		return true
	}

	text := strings.ToLower(strings.Join([]string{minText, maxText}, " "))
	if jobs.HourlyIndicated(text) {
		if rate, ok := jobs.FirstInteger(text); ok {
			return within(float64(rate), minHourly, maxHourly)
		}
	}

	annual := max(positive(minText), positive(maxText))
	if annual > 0 {
		estimated := float64(annual) / jobs.HoursPerYear
		return within(estimated, minHourly, maxHourly*2)
	}

	return true
}

func within(v, lo, hi float64) bool {
	if v < lo {
		return false
	}
	return hi == 0 || v <= hi
}

func positive(s string) int {
	n, ok := jobs.LeadingInteger(s)
	if !ok || n < 0 {
		return 0
	}
	return n
}
