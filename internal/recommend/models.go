// internal/recommend/models.go
package recommend

import "time"

// Profile is a job seeker's profile as stored by the data layer. The list
// fields are serialized JSON arrays; all fields may be empty or malformed and
// are decoded defensively at scoring time.
type Profile struct {
	Skills         string `json:"skills,omitempty"`
	PreferredTypes string `json:"preferredJobTypes,omitempty"`
	Location       string `json:"location,omitempty"`
	Experience     string `json:"experience,omitempty"`
}

// Job is an open posting. Type and Location are required by the data layer;
// Skills is a serialized JSON array; PostedAt is nil for drafts that have not
// been published yet. Extra carries any posting fields the engine does not
// read, passed through untouched.
type Job struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	Type         string                 `json:"type"`
	Location     string                 `json:"location"`
	Skills       string                 `json:"skills,omitempty"`
	Requirements string                 `json:"requirements,omitempty"`
	PostedAt     *time.Time             `json:"postedAt,omitempty"`
	Extra        map[string]interface{} `json:"extra,omitempty"`
}

// ScoredJob is a Job plus the match result for one scoring pass. Instances
// are fresh copies; the input Job is never mutated.
type ScoredJob struct {
	Job
	MatchScore   int      `json:"matchScore"`
	MatchReasons []string `json:"matchReasons"`
}
