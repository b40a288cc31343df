// internal/workers/recommendation/score-jobs/models.go
package scorejobs

import "jobboard-workers/internal/recommend"

// Input is the task variable payload. The profile and job pool may be
// supplied inline by the orchestration; otherwise the worker resolves the
// profile by userId and falls back to the open-postings index for jobs.
type Input struct {
	UserID  string             `json:"userId,omitempty"`
	Profile *recommend.Profile `json:"profile,omitempty"`
	Jobs    []recommend.Job    `json:"jobs,omitempty"`
	Limit   int                `json:"limit,omitempty"`
}

type Output struct {
	ScoringID       string                `json:"scoringId"`
	Recommendations []recommend.ScoredJob `json:"recommendations"`
	TotalScored     int                   `json:"totalScored"`
}
