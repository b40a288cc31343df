// internal/workers/recommendation/explain-match/models.go
package explainmatch

import (
	"jobboard-workers/internal/recommend"
)

// Input carries the process variables for a single-job explanation.
// Either a full inline profile or a userId to resolve one must be
// present; the job itself is required.
type Input struct {
	UserID  string             `json:"userId,omitempty"`
	Profile *recommend.Profile `json:"profile,omitempty"`
	Job     recommend.Job      `json:"job"`
}

// Output is written back to the process instance.
type Output struct {
	MatchScore  int    `json:"matchScore"`
	Explanation string `json:"explanation"`
}
