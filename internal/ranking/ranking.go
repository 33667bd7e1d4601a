// Package ranking orders validated postings by keyword relevance.
package ranking

import (
	"sort"
	"strings"

	"github.com/spigell/job-scraper/internal/jobs"
)

// Field weights of a single keyword occurrence.
const (
	TitleWeight       = 3
	SkillWeight       = 2
	DescriptionWeight = 1
)

// Scored pairs a posting with its relevance score.
type Scored struct {
	Posting *jobs.Posting
	Score   int
}

// Score adds, for every keyword, the weight of each field it occurs in.
// Matching is case-insensitive and a keyword counts at most once per field.
func Score(p *jobs.Posting, keywords []string) int {
	title := strings.ToLower(p.Title)
	description := strings.ToLower(p.Description)

	skills := make([]string, len(p.Skills))
	for i, s := range p.Skills {
		skills[i] = strings.ToLower(s)
	}

	score := 0
	for _, keyword := range keywords {
		k := strings.ToLower(keyword)
		if strings.Contains(title, k) {
			score += TitleWeight
		}
		if anyContains(skills, k) {
			score += SkillWeight
		}
		if strings.Contains(description, k) {
			score += DescriptionWeight
		}
	}
	return score
}

// ScoreAll computes scores once per posting, keeping input order.
func ScoreAll(postings []*jobs.Posting, keywords []string) []Scored {
	scored := make([]Scored, len(postings))
	for i, p := range postings {
		scored[i] = Scored{Posting: p, Score: Score(p, keywords)}
	}
	return scored
}

// RankScored sorts by descending score. Equal scores keep their input order.
func RankScored(postings []*jobs.Posting, keywords []string) []Scored {
	scored := ScoreAll(postings, keywords)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Rank returns a new slice ordered by descending relevance. The input is not modified.
func Rank(postings []*jobs.Posting, keywords []string) []*jobs.Posting {
	scored := RankScored(postings, keywords)
	ranked := make([]*jobs.Posting, len(scored))
	for i, s := range scored {
		ranked[i] = s.Posting
	}
	return ranked
}

func anyContains(values []string, sub string) bool {
	for _, v := range values {
		if strings.Contains(v, sub) {
			return true
		}
	}
	return false
}
