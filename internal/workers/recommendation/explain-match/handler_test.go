// internal/workers/recommendation/explain-match/handler_test.go
package explainmatch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"jobboard-workers/internal/common/logger"
	"jobboard-workers/internal/recommend"
	"jobboard-workers/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T, profiles *store.ProfileStore) *Handler {
	h := NewHandler(
		LoadConfig(),
		profiles,
		recommend.NewEngine(recommend.DefaultWeights()),
		logger.NewTestLogger(t),
		nil,
	)
	h.now = func() time.Time { return testNow }
	return h
}

func TestHandler_Execute_FullMatch(t *testing.T) {
	h := newTestHandler(t, nil)
	posted := testNow.Add(-48 * time.Hour)

	input := &Input{
		Profile: &recommend.Profile{
			Skills:         `["react", "node.js"]`,
			PreferredTypes: `["FULL_TIME"]`,
			Location:       "Austin",
			Experience:     `["5 years as backend engineer"]`,
		},
		Job: recommend.Job{
			ID:           "job-1",
			Type:         "FULL_TIME",
			Location:     "Austin, TX",
			Skills:       `["react", "node"]`,
			Requirements: `["senior engineer"]`,
			PostedAt:     &posted,
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 100, output.MatchScore)
	assert.Equal(t,
		"100% skills match, Matches your preferred job type, Location match, Experience level matches, and Recently posted",
		output.Explanation)
}

func TestHandler_Execute_NoSignal(t *testing.T) {
	h := newTestHandler(t, nil)
	stale := testNow.Add(-90 * 24 * time.Hour)

	input := &Input{
		Profile: &recommend.Profile{
			Skills:         `["react"]`,
			PreferredTypes: `["INTERNSHIP"]`,
			Location:       "Berlin",
		},
		Job: recommend.Job{
			ID:       "job-2",
			Type:     "FULL_TIME",
			Location: "Austin",
			Skills:   `["cobol"]`,
			PostedAt: &stale,
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "Available opportunity", output.Explanation)
	assert.Less(t, output.MatchScore, 20)
}

func TestHandler_Execute_ProfileFromStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"skills", "preferred_job_types", "location", "experience"}).
		AddRow(`["typescript"]`, `["REMOTE"]`, "Lisbon", nil)
	mock.ExpectQuery("SELECT skills, preferred_job_types, location, experience").
		WithArgs("seeker-7").
		WillReturnRows(rows)

	h := newTestHandler(t, store.NewProfileStore(db, nil, time.Minute))

	input := &Input{
		UserID: "seeker-7",
		Job: recommend.Job{
			ID:       "job-3",
			Type:     "REMOTE",
			Location: "Lisbon",
			Skills:   `["ts"]`,
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, output.Explanation, "Location match")
	assert.Contains(t, output.Explanation, "100% skills match")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_LookupFailureStillExplains(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT skills, preferred_job_types, location, experience").
		WithArgs("ghost").
		WillReturnError(fmt.Errorf("no such user"))

	h := newTestHandler(t, store.NewProfileStore(db, nil, time.Minute))

	output, err := h.Execute(context.Background(), &Input{
		UserID: "ghost",
		Job:    recommend.Job{ID: "job-4", Type: "FULL_TIME"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Available opportunity", output.Explanation)
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantErr   bool
	}{
		{"job with inline profile", `{"profile": {}, "job": {"id": "j1"}}`, false},
		{"job with userId", `{"userId": "u1", "job": {"id": "j1"}}`, false},
		{"missing job", `{"userId": "u1"}`, true},
		{"job wrong type", `{"job": "j1"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInput(tt.variables)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
