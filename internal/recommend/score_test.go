// internal/recommend/score_test.go
package recommend

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewEngine(DefaultWeights())
}

func daysAgo(days int) *time.Time {
	t := testNow.Add(-time.Duration(days) * 24 * time.Hour)
	return &t
}

func createTestProfile() Profile {
	return Profile{
		Skills:         `["React", "Node.js"]`,
		PreferredTypes: `["FULL_TIME"]`,
		Location:       "Austin",
		Experience:     `["5 years as backend engineer"]`,
	}
}

func createTestJob(id string) Job {
	return Job{
		ID:       id,
		Title:    "Backend Engineer",
		Type:     "FULL_TIME",
		Location: "Austin, TX",
		Skills:   `["react", "node"]`,
	}
}

// ==========================
// Criterion Scorer Tests
// ==========================

func TestScoreSkills(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name           string
		profileSkills  string
		jobSkills      string
		expectedPoints float64
		expectedReason string
	}{
		{
			name:           "half coverage emits percentage reason",
			profileSkills:  `["React", "Node.js"]`,
			jobSkills:      `["react", "typescript"]`,
			expectedPoints: 20,
			expectedReason: "50% skills match",
		},
		{
			name:           "full coverage",
			profileSkills:  `["react", "node"]`,
			jobSkills:      `["react", "node"]`,
			expectedPoints: 40,
			expectedReason: "100% skills match",
		},
		{
			name:           "below half keeps points but no reason",
			profileSkills:  `["react"]`,
			jobSkills:      `["react", "python", "docker", "aws"]`,
			expectedPoints: 10,
			expectedReason: "",
		},
		{
			name:           "no profile skills",
			profileSkills:  "",
			jobSkills:      `["react"]`,
			expectedPoints: 0,
			expectedReason: "",
		},
		{
			name:           "malformed job skills",
			profileSkills:  `["react"]`,
			jobSkills:      "react,typescript",
			expectedPoints: 0,
			expectedReason: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, reason := engine.scoreSkills(
				Profile{Skills: tt.profileSkills},
				Job{Skills: tt.jobSkills},
			)
			assert.InDelta(t, tt.expectedPoints, points, 1e-9)
			assert.Equal(t, tt.expectedReason, reason)
		})
	}
}

func TestScoreJobType(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name           string
		preferredTypes string
		jobType        string
		expectedPoints float64
		expectedReason string
	}{
		{
			name:           "no preference scores neutral without a reason",
			preferredTypes: "",
			jobType:        "FULL_TIME",
			expectedPoints: 15,
			expectedReason: "",
		},
		{
			name:           "exact preference match",
			preferredTypes: `["full_time"]`,
			jobType:        "FULL_TIME",
			expectedPoints: 30,
			expectedReason: "Matches your preferred job type",
		},
		{
			name:           "containment match",
			preferredTypes: `["remote"]`,
			jobType:        "remote_contract",
			expectedPoints: 30,
			expectedReason: "Matches your preferred job type",
		},
		{
			name:           "preference present but mismatched",
			preferredTypes: `["internship"]`,
			jobType:        "FULL_TIME",
			expectedPoints: 0,
			expectedReason: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, reason := engine.scoreJobType(
				Profile{PreferredTypes: tt.preferredTypes},
				Job{Type: tt.jobType},
			)
			assert.InDelta(t, tt.expectedPoints, points, 1e-9)
			assert.Equal(t, tt.expectedReason, reason)
		})
	}
}

func TestScoreLocation(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name            string
		profileLocation string
		jobLocation     string
		expectedPoints  float64
		expectedReason  string
	}{
		{
			name:            "substring match",
			profileLocation: "Austin",
			jobLocation:     "Austin, TX",
			expectedPoints:  15,
			expectedReason:  "Location match",
		},
		{
			name:            "profile location absent scores neutral",
			profileLocation: "",
			jobLocation:     "Austin, TX",
			expectedPoints:  7.5,
			expectedReason:  "",
		},
		{
			name:            "both present but mismatched",
			profileLocation: "Berlin",
			jobLocation:     "Austin, TX",
			expectedPoints:  0,
			expectedReason:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, reason := engine.scoreLocation(
				Profile{Location: tt.profileLocation},
				Job{Location: tt.jobLocation},
			)
			assert.InDelta(t, tt.expectedPoints, points, 1e-9)
			assert.Equal(t, tt.expectedReason, reason)
		})
	}
}

// Unknown location must outrank or tie a known mismatch, never lose to it.
func TestScoreLocation_NeutralAbsence(t *testing.T) {
	engine := testEngine()
	job := Job{Location: "Austin, TX"}

	absent, _ := engine.scoreLocation(Profile{}, job)
	mismatch, _ := engine.scoreLocation(Profile{Location: "Berlin"}, job)

	assert.GreaterOrEqual(t, absent, mismatch)
	assert.InDelta(t, 7.5, absent, 1e-9)
}

func TestScoreExperience(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name           string
		experience     string
		requirements   string
		expectedPoints float64
		expectedReason string
	}{
		{
			name:           "senior requirement with enough years",
			experience:     `["5 years as backend engineer"]`,
			requirements:   "We are looking for a senior engineer",
			expectedPoints: 10,
			expectedReason: "Experience level matches",
		},
		{
			name:           "senior requirement without enough years",
			experience:     `["2 years of frontend work"]`,
			requirements:   "senior role",
			expectedPoints: 5,
			expectedReason: "",
		},
		{
			name:           "entry requirement with few years",
			experience:     `["1 year internship"]`,
			requirements:   "entry level position",
			expectedPoints: 10,
			expectedReason: "Experience level matches",
		},
		{
			name:           "entry requirement overqualified",
			experience:     `["4 years", "3 years"]`,
			requirements:   "junior developer",
			expectedPoints: 7,
			expectedReason: "",
		},
		{
			name:           "mid requirement in range",
			experience:     `["3 years at a startup"]`,
			requirements:   "mid-level engineer",
			expectedPoints: 10,
			expectedReason: "Experience level matches",
		},
		{
			name:           "years summed across entries",
			experience:     `["3 years backend", "2+ years frontend"]`,
			requirements:   "senior engineer",
			expectedPoints: 10,
			expectedReason: "Experience level matches",
		},
		{
			name:           "no recognizable keyword scores neutral",
			experience:     `["5 years"]`,
			requirements:   "Must enjoy teamwork",
			expectedPoints: 5,
			expectedReason: "",
		},
		{
			name:           "missing experience entries score neutral",
			experience:     "",
			requirements:   "",
			expectedPoints: 5,
			expectedReason: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, reason := engine.scoreExperience(
				Profile{Experience: tt.experience},
				Job{Requirements: tt.requirements},
			)
			assert.InDelta(t, tt.expectedPoints, points, 1e-9)
			assert.Equal(t, tt.expectedReason, reason)
		})
	}
}

func TestScoreRecency(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name           string
		postedAt       *time.Time
		expectedPoints float64
		expectedReason string
	}{
		{"posted 2 days ago", daysAgo(2), 5, "Recently posted"},
		{"posted 20 days ago", daysAgo(20), 2.5, ""},
		{"posted 45 days ago", daysAgo(45), 0, ""},
		{"draft has no bonus and no penalty", nil, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, reason := engine.scoreRecency(Job{PostedAt: tt.postedAt}, testNow)
			assert.InDelta(t, tt.expectedPoints, points, 1e-9)
			assert.Equal(t, tt.expectedReason, reason)
		})
	}
}

// ==========================
// Aggregator / Ranker Tests
// ==========================

func TestScoreJobs_BoundsAndOrdering(t *testing.T) {
	engine := testEngine()
	profile := createTestProfile()

	jobs := []Job{
		createTestJob("job-1"),
		{ID: "job-2", Type: "CONTRACT", Location: "Berlin"},
		{ID: "job-3", Type: "FULL_TIME", Location: "Austin", Skills: `["react"]`, PostedAt: daysAgo(1)},
		{ID: "job-4", Type: "PART_TIME", Location: "Remote", Skills: "not json"},
	}

	scored := engine.ScoreJobs(profile, jobs, testNow)
	require.Len(t, scored, len(jobs))

	seen := map[string]bool{}
	for i, sj := range scored {
		assert.GreaterOrEqual(t, sj.MatchScore, 0)
		assert.LessOrEqual(t, sj.MatchScore, 100)
		assert.NotEmpty(t, sj.MatchReasons)
		seen[sj.ID] = true
		if i > 0 {
			assert.GreaterOrEqual(t, scored[i-1].MatchScore, sj.MatchScore)
		}
	}
	// Permutation of the input: same count, same identities.
	assert.Len(t, seen, len(jobs))
	for _, job := range jobs {
		assert.True(t, seen[job.ID], "job %s missing from output", job.ID)
	}
}

func TestScoreJobs_Idempotent(t *testing.T) {
	engine := testEngine()
	profile := createTestProfile()
	jobs := []Job{createTestJob("a"), createTestJob("b"), {ID: "c", Type: "CONTRACT", Location: "Remote"}}

	first := engine.ScoreJobs(profile, jobs, testNow)
	second := engine.ScoreJobs(profile, jobs, testNow)

	assert.Equal(t, first, second)
}

func TestScoreJobs_StableTies(t *testing.T) {
	engine := testEngine()

	// Identical jobs score identically; stable sort keeps input order.
	jobs := []Job{
		{ID: "first", Type: "FULL_TIME", Location: "Remote"},
		{ID: "second", Type: "FULL_TIME", Location: "Remote"},
		{ID: "third", Type: "FULL_TIME", Location: "Remote"},
	}

	scored := engine.ScoreJobs(Profile{}, jobs, testNow)
	require.Len(t, scored, 3)
	assert.Equal(t, "first", scored[0].ID)
	assert.Equal(t, "second", scored[1].ID)
	assert.Equal(t, "third", scored[2].ID)
}

func TestScoreJobs_EmptyPool(t *testing.T) {
	engine := testEngine()
	assert.Empty(t, engine.ScoreJobs(createTestProfile(), nil, testNow))
	assert.Empty(t, engine.TopRecommendations(createTestProfile(), nil, 6, testNow))
}

func TestScoreJobs_FallbackReason(t *testing.T) {
	engine := testEngine()

	// Preference and location both present and mismatched, no skills on
	// either side, stale posting: nothing contributes a reason.
	profile := Profile{PreferredTypes: `["internship"]`, Location: "Berlin"}
	job := Job{ID: "j", Type: "FULL_TIME", Location: "Austin", PostedAt: daysAgo(90)}

	scored := engine.ScoreJobs(profile, []Job{job}, testNow)
	require.Len(t, scored, 1)
	assert.Equal(t, []string{"Available opportunity"}, scored[0].MatchReasons)
}

func TestScoreJobs_SkillsMonotonicity(t *testing.T) {
	engine := testEngine()
	profile := Profile{Skills: `["react", "node.js"]`}

	covered, _ := engine.scoreSkills(profile, Job{Skills: `["react", "node"]`})
	uncovered, _ := engine.scoreSkills(profile, Job{Skills: `["react", "cobol"]`})

	assert.GreaterOrEqual(t, covered, uncovered)
}

func TestScoreJobs_DoesNotMutateInputs(t *testing.T) {
	engine := testEngine()
	job := createTestJob("keep")
	original := job

	engine.ScoreJobs(createTestProfile(), []Job{job}, testNow)
	assert.Equal(t, original, job)
}

func TestTopRecommendations(t *testing.T) {
	engine := testEngine()

	// Jobs requiring 40 skills with a strictly increasing number covered:
	// every job lands on a distinct score.
	profileSkills := make([]string, 40)
	for i := range profileSkills {
		profileSkills[i] = fmt.Sprintf(`"known%02d"`, i)
	}
	profile := Profile{Skills: "[" + joinComma(profileSkills) + "]"}

	var jobs []Job
	for covered := 0; covered <= 40; covered++ {
		skills := make([]string, 0, 40)
		for i := 0; i < covered; i++ {
			skills = append(skills, fmt.Sprintf(`"known%02d"`, i))
		}
		for i := covered; i < 40; i++ {
			skills = append(skills, fmt.Sprintf(`"other%02d"`, i))
		}
		jobs = append(jobs, Job{
			ID:       fmt.Sprintf("job-%02d", covered),
			Type:     "FULL_TIME",
			Location: "Remote",
			Skills:   "[" + joinComma(skills) + "]",
		})
	}

	full := engine.ScoreJobs(profile, jobs, testNow)
	top := engine.TopRecommendations(profile, jobs, 6, testNow)

	require.Len(t, top, 6)
	assert.Equal(t, full[:6], top)
	for i := 1; i < len(top); i++ {
		assert.Greater(t, top[i-1].MatchScore, top[i].MatchScore)
	}
	// Most skills covered ranks first.
	assert.Equal(t, "job-40", top[0].ID)
}

func TestTopRecommendations_DefaultLimit(t *testing.T) {
	engine := testEngine()

	var jobs []Job
	for i := 0; i < 10; i++ {
		jobs = append(jobs, createTestJob(fmt.Sprintf("job-%d", i)))
	}

	assert.Len(t, engine.TopRecommendations(createTestProfile(), jobs, 0, testNow), 6)
	assert.Len(t, engine.TopRecommendations(createTestProfile(), jobs, -3, testNow), 6)
	assert.Len(t, engine.TopRecommendations(createTestProfile(), jobs[:4], 6, testNow), 4)
}

// ==========================
// Explainer Tests
// ==========================

func TestExplain(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name     string
		profile  Profile
		job      Job
		expected string
	}{
		{
			name:    "single reason as-is",
			profile: Profile{Location: "Austin"},
			job:     Job{Type: "FULL_TIME", Location: "Austin, TX"},
			// Location is the only contributing criterion.
			expected: "Location match",
		},
		{
			name:    "two reasons joined with and",
			profile: Profile{Location: "Austin"},
			job:     Job{Type: "FULL_TIME", Location: "Austin, TX", PostedAt: daysAgo(2)},
			expected: "Location match and Recently posted",
		},
		{
			name:    "three or more reasons joined oxford style",
			profile: createTestProfile(),
			job: Job{
				Type:         "FULL_TIME",
				Location:     "Austin, TX",
				Skills:       `["react", "node"]`,
				Requirements: "senior engineer",
				PostedAt:     daysAgo(2),
			},
			expected: "100% skills match, Matches your preferred job type, Location match, Experience level matches, and Recently posted",
		},
		{
			name:     "no contributing criteria falls back to generic sentence",
			profile:  Profile{},
			job:      Job{Type: "FULL_TIME", Location: "Remote"},
			expected: "Available opportunity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentence := engine.Explain(tt.profile, tt.job, testNow)
			assert.Equal(t, tt.expected, sentence)
			assert.NotEmpty(t, sentence)
		})
	}
}

func TestJoinReasons(t *testing.T) {
	assert.Equal(t, "Available opportunity", joinReasons(nil))
	assert.Equal(t, "A", joinReasons([]string{"A"}))
	assert.Equal(t, "A and B", joinReasons([]string{"A", "B"}))
	assert.Equal(t, "A, B, and C", joinReasons([]string{"A", "B", "C"}))
}

func joinComma(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}
