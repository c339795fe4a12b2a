package filter

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go-jobsearch-malawi/internal/models"
)

var (
	degreeRegex     = regexp.MustCompile(`(bachelor|master|degree|diploma)`)
	experienceRegex = regexp.MustCompile(`(\d+)\s*years?\s*experience`)
	skillTokenRegex = regexp.MustCompile(`\b\w{3,}\b`)
)

// RelevanceScore rates how well a job fits free-text qualifications,
// on a 0..1 scale. Empty qualifications score a flat 0.8. The heuristic
// starts at 0.6 and adds small bonuses for education level, years of
// experience and skill-word overlap with the job text. It never panics;
// anything unexpected degrades to 0.7.
func RelevanceScore(job models.Job, userQualifications string) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = 0.7
		}
	}()

	if strings.TrimSpace(userQualifications) == "" {
		return 0.8
	}

	jobText := strings.ToLower(job.Title + " " + job.Company + " " + job.Description)
	qText := strings.ToLower(userQualifications)

	score = 0.6

	if degreeRegex.MatchString(qText) {
		score += 0.1
	}

	if m := experienceRegex.FindStringSubmatch(qText); m != nil {
		years, _ := strconv.Atoi(m[1])
		if years >= 2 {
			score += 0.1
		}
		if years >= 5 {
			score += 0.1
		}
	}

	matched := 0
	for _, token := range skillTokenRegex.FindAllString(qText, -1) {
		if strings.Contains(jobText, token) {
			matched++
		}
	}
	if matched > 0 {
		score += math.Min(0.2, float64(matched)*0.02)
	}

	return math.Min(1.0, score)
}
