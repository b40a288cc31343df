// internal/recommend/score.go

// Package recommend scores open job postings against a seeker profile and
// ranks them. It is a pure library: no I/O, no clock reads, no mutation of
// its inputs, and no operation ever fails on malformed data. Bad input
// degrades to a lower score, never an error.
package recommend

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ScoringWeights holds the per-criterion point budgets and tuning knobs.
// The four base weights plus the recency bonus are designed to total 100,
// so the final score needs clamping only as a guard.
type ScoringWeights struct {
	Skills       float64
	JobType      float64
	Location     float64
	Experience   float64
	RecencyBonus float64

	// FuzzySimilarity is the normalized edit-distance threshold at or
	// above which two skill tokens are considered the same.
	FuzzySimilarity float64

	// RecentWindow earns the full recency bonus, RecentTailWindow half.
	RecentWindow     time.Duration
	RecentTailWindow time.Duration

	// DefaultLimit is used by TopRecommendations when the caller passes
	// a non-positive limit.
	DefaultLimit int
}

// DefaultWeights returns the production rule set.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Skills:           40,
		JobType:          30,
		Location:         15,
		Experience:       10,
		RecencyBonus:     5,
		FuzzySimilarity:  0.8,
		RecentWindow:     7 * 24 * time.Hour,
		RecentTailWindow: 30 * 24 * time.Hour,
		DefaultLimit:     6,
	}
}

// Engine evaluates postings against a profile under a fixed rule set. The
// zero value is not usable; construct with NewEngine.
type Engine struct {
	weights ScoringWeights
}

func NewEngine(weights ScoringWeights) *Engine {
	return &Engine{weights: weights}
}

// ScoreJobs scores every posting against the profile and returns fresh
// ScoredJob copies sorted by score descending. The sort is stable, so
// postings with equal scores keep their input order; callers usually
// supply postings most-recent-first and that order is part of the
// contract for ties. now is injected so a pass is reproducible.
func (e *Engine) ScoreJobs(profile Profile, jobs []Job, now time.Time) []ScoredJob {
	scored := make([]ScoredJob, len(jobs))
	for i, job := range jobs {
		scored[i] = e.scoreOne(profile, job, now)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	return scored
}

// TopRecommendations scores and ranks, then truncates to the first limit
// entries. A non-positive limit falls back to DefaultLimit.
func (e *Engine) TopRecommendations(profile Profile, jobs []Job, limit int, now time.Time) []ScoredJob {
	if limit <= 0 {
		limit = e.weights.DefaultLimit
	}
	scored := e.ScoreJobs(profile, jobs, now)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Explain scores a single posting and joins its reasons into one sentence:
// "A", "A and B", or "A, B, and C". Never empty.
func (e *Engine) Explain(profile Profile, job Job, now time.Time) string {
	scored := e.scoreOne(profile, job, now)
	return joinReasons(scored.MatchReasons)
}

// scoreOne runs the criterion scorers in a fixed order, sums the weighted
// points and collects the reasons each criterion contributed.
func (e *Engine) scoreOne(profile Profile, job Job, now time.Time) ScoredJob {
	total := 0.0
	reasons := []string{}

	add := func(points float64, reason string) {
		total += points
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	add(e.scoreSkills(profile, job))
	add(e.scoreJobType(profile, job))
	add(e.scoreLocation(profile, job))
	add(e.scoreExperience(profile, job))
	add(e.scoreRecency(job, now))

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Available opportunity")
	}

	return ScoredJob{Job: job, MatchScore: score, MatchReasons: reasons}
}

func (e *Engine) scoreSkills(profile Profile, job Job) (float64, string) {
	fraction := e.SkillMatchFraction(ParseStringList(profile.Skills), ParseStringList(job.Skills))
	points := e.weights.Skills * fraction

	if fraction >= 0.5 {
		return points, fmt.Sprintf("%d%% skills match", int(math.Round(fraction*100)))
	}
	return points, ""
}

// scoreJobType awards the full weight when the posting's type equals,
// contains or is contained by any preferred type. A profile with no
// preference gets neutral half-credit: absence of a signal must not
// penalize.
func (e *Engine) scoreJobType(profile Profile, job Job) (float64, string) {
	prefs := ParseStringList(profile.PreferredTypes)
	if len(prefs) == 0 {
		return e.weights.JobType / 2, ""
	}

	jobType := strings.ToLower(strings.TrimSpace(job.Type))
	if jobType == "" {
		return 0, ""
	}
	for _, pref := range prefs {
		if jobType == pref || strings.Contains(jobType, pref) || strings.Contains(pref, jobType) {
			return e.weights.JobType, "Matches your preferred job type"
		}
	}
	return 0, ""
}

func (e *Engine) scoreLocation(profile Profile, job Job) (float64, string) {
	profileLoc := strings.ToLower(strings.TrimSpace(profile.Location))
	jobLoc := strings.ToLower(strings.TrimSpace(job.Location))
	if profileLoc == "" || jobLoc == "" {
		return e.weights.Location / 2, ""
	}

	// "Austin" matches "Austin, TX" and vice versa.
	if strings.Contains(jobLoc, profileLoc) || strings.Contains(profileLoc, jobLoc) {
		return e.weights.Location, "Location match"
	}
	return 0, ""
}

var yearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?`)

// scoreExperience compares total years parsed from the profile's experience
// entries against the level keywords found in the posting's requirements.
// No recognizable keyword scores neutral, without a reason.
func (e *Engine) scoreExperience(profile Profile, job Job) (float64, string) {
	years := totalYears(ParseStringList(profile.Experience))
	requirements := strings.ToLower(job.Requirements)

	fraction := 0.5
	reason := ""
	switch {
	case strings.Contains(requirements, "entry") || strings.Contains(requirements, "junior"):
		if years <= 2 {
			fraction, reason = 1.0, "Experience level matches"
		} else {
			fraction = 0.7
		}
	case strings.Contains(requirements, "senior") || strings.Contains(requirements, "lead"):
		if years >= 5 {
			fraction, reason = 1.0, "Experience level matches"
		} else {
			fraction = 0.5
		}
	case strings.Contains(requirements, "mid") || strings.Contains(requirements, "intermediate"):
		if years >= 2 && years <= 5 {
			fraction, reason = 1.0, "Experience level matches"
		} else {
			fraction = 0.7
		}
	}

	return e.weights.Experience * fraction, reason
}

// totalYears sums every "<N> years" mention across the entries.
func totalYears(entries []string) int {
	years := 0
	for _, entry := range entries {
		for _, match := range yearsPattern.FindAllStringSubmatch(entry, -1) {
			if n, err := strconv.Atoi(match[1]); err == nil {
				years += n
			}
		}
	}
	return years
}

// scoreRecency grants a time-decay bonus for fresh postings. Drafts carry
// no timestamp and get neither bonus nor penalty.
func (e *Engine) scoreRecency(job Job, now time.Time) (float64, string) {
	if job.PostedAt == nil {
		return 0, ""
	}

	age := now.Sub(*job.PostedAt)
	switch {
	case age <= e.weights.RecentWindow:
		return e.weights.RecencyBonus, "Recently posted"
	case age <= e.weights.RecentTailWindow:
		return e.weights.RecencyBonus / 2, ""
	default:
		return 0, ""
	}
}

func joinReasons(reasons []string) string {
	switch len(reasons) {
	case 0:
		return "Available opportunity"
	case 1:
		return reasons[0]
	case 2:
		return reasons[0] + " and " + reasons[1]
	default:
		return strings.Join(reasons[:len(reasons)-1], ", ") + ", and " + reasons[len(reasons)-1]
	}
}
