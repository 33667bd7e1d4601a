package sample

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-scraper/internal/jobs"
)

var now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	first := Generate(50, 42, now)
	second := Generate(50, 42, now)
	require.Len(t, first, 50)
	assert.Equal(t, first, second)

	other := Generate(50, 7, now)
	assert.NotEqual(t, first, other, "different seeds should change salaries or dates")
}

func TestGenerateProducesValidPostings(t *testing.T) {
	t.Parallel()

	for i, c := range Generate(40, 1, now) {
		assert.True(t, c.HasMandatoryFields(), "candidate %d", i)
		assert.Equal(t, URLPrefix+strconv.Itoa(1000+i), c.URL)
		assert.Equal(t, jobs.RemoteTypeRemote, c.RemoteType)
		assert.Equal(t, jobs.DefaultCurrency, c.Currency)

		if c.JobType == jobs.JobTypeFullTime {
			minSalary, err := strconv.Atoi(jobs.Deref(c.SalaryMin))
			require.NoError(t, err)
			maxSalary, err := strconv.Atoi(jobs.Deref(c.SalaryMax))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, minSalary, 80000)
			assert.Less(t, minSalary, 140000)
			assert.GreaterOrEqual(t, maxSalary, minSalary+39999)
			assert.Less(t, maxSalary, minSalary+120001)
		} else {
			rate, err := strconv.Atoi(strings.TrimSuffix(jobs.Deref(c.SalaryMin), "/hr"))
			require.NoError(t, err, "candidate %d", i)
			maxRate, err := strconv.Atoi(strings.TrimSuffix(jobs.Deref(c.SalaryMax), "/hr"))
			require.NoError(t, err, "candidate %d", i)
			assert.GreaterOrEqual(t, rate, 15)
			assert.LessOrEqual(t, rate, 20)
			assert.GreaterOrEqual(t, maxRate, rate)
			assert.LessOrEqual(t, maxRate, rate+5)
		}

		posted, err := time.Parse(time.DateOnly, c.PostedDate)
		require.NoError(t, err)
		assert.False(t, posted.After(now))
		assert.True(t, posted.After(now.AddDate(0, 0, -31)))

		p, err := c.Validate()
		require.NoError(t, err, "candidate %d", i)
		assert.Equal(t, c.CompanyURL, p.CompanyURL)
	}
}

func TestGenerateCyclesTables(t *testing.T) {
	t.Parallel()

	got := Generate(21, 3, now)
	assert.Equal(t, "Senior Node.js Developer #1", got[0].Title)
	assert.Equal(t, "Senior Node.js Developer #21", got[20].Title)
	assert.Equal(t, got[0].Company, got[20].Company)
	assert.Equal(t, jobs.JobTypeFullTime, got[0].JobType)
	assert.Equal(t, jobs.JobTypeContract, got[3].JobType)
	assert.Equal(t, jobs.JobTypeFreelance, got[5].JobType)

	got[0].Skills[0] = "changed"
	assert.Equal(t, "Node.js", skillSets[0][0], "skills must be copied")

	assert.Empty(t, Generate(0, 1, now))
}
