package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-scraper/internal/jobs"
)

func posting(title, description string, skills ...string) *jobs.Posting {
	return &jobs.Posting{Title: title, Description: description, Skills: skills}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		posting  *jobs.Posting
		keywords []string
		expect   int
	}{
		{
			name:     "title and skills",
			posting:  posting("Senior TypeScript Engineer", "Build APIs", "typescript", "react"),
			keywords: []string{"typescript"},
			expect:   5,
		},
		{
			name:     "all three fields",
			posting:  posting("Node Developer", "Work with node daily", "Node.js"),
			keywords: []string{"NODE"},
			expect:   6,
		},
		{
			name:     "skill counted once even if several match",
			posting:  posting("Engineer", "", "React", "React Native"),
			keywords: []string{"react"},
			expect:   2,
		},
		{
			name:     "accumulates across keywords",
			posting:  posting("AI Engineer", "TypeScript and Python", "Python"),
			keywords: []string{"ai", "typescript", "python"},
			expect:   3 + 1 + 2 + 1,
		},
		{
			name:     "no match",
			posting:  posting("Chef", "Cook pasta"),
			keywords: []string{"go"},
			expect:   0,
		},
		{
			name:     "no keywords",
			posting:  posting("Go Developer", "Go"),
			expect:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Score(tt.posting, tt.keywords))
		})
	}
}

func TestRankTitleBeatsDescription(t *testing.T) {
	t.Parallel()

	inDescription := posting("Backend Engineer", "Our stack is typescript")
	inTitle := posting("TypeScript Engineer", "Our stack is modern")

	ranked := Rank([]*jobs.Posting{inDescription, inTitle}, []string{"typescript"})
	require.Len(t, ranked, 2)
	assert.Same(t, inTitle, ranked[0])
	assert.Same(t, inDescription, ranked[1])
}

func TestRankIsStable(t *testing.T) {
	t.Parallel()

	var input []*jobs.Posting
	for i := 0; i < 20; i++ {
		title := fmt.Sprintf("Engineer %d", i)
		if i%3 == 0 {
			title = fmt.Sprintf("Go Engineer %d", i)
		}
		input = append(input, posting(title, ""))
	}
	original := append([]*jobs.Posting(nil), input...)

	ranked := Rank(input, []string{"go"})
	require.Len(t, ranked, len(input))
	assert.Equal(t, original, input, "input must not be reordered")

	var high, low []*jobs.Posting
	for i, p := range input {
		if i%3 == 0 {
			high = append(high, p)
			continue
		}
		low = append(low, p)
	}
	expected := append(high, low...)
	for i := range expected {
		assert.Same(t, expected[i], ranked[i], "position %d", i)
	}
}

func TestRankScored(t *testing.T) {
	t.Parallel()

	a := posting("Python Developer", "")
	b := posting("Node Developer", "node", "node")
	scored := RankScored([]*jobs.Posting{a, b}, []string{"node", "python"})

	require.Len(t, scored, 2)
	assert.Equal(t, Scored{Posting: b, Score: 6}, scored[0])
	assert.Equal(t, Scored{Posting: a, Score: 3}, scored[1])

	assert.Empty(t, Rank(nil, []string{"node"}))
}
