// internal/store/postings_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePostings(t *testing.T) {
	body := []byte(`{
		"hits": {
			"total": {"value": 2},
			"hits": [
				{
					"_id": "es-doc-1",
					"_source": {
						"id": "job-1",
						"title": "Backend Engineer",
						"type": "FULL_TIME",
						"location": "Austin, TX",
						"skills": "[\"react\", \"node\"]",
						"requirements": "senior engineer",
						"postedAt": "2025-06-13T12:00:00Z"
					}
				},
				{
					"_id": "es-doc-2",
					"_source": {
						"title": "Draft Posting",
						"type": "CONTRACT",
						"location": "Remote"
					}
				}
			]
		}
	}`)

	jobs, err := decodePostings(body)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "job-1", jobs[0].ID)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	require.NotNil(t, jobs[0].PostedAt)
	assert.Equal(t, 2025, jobs[0].PostedAt.Year())

	// Document id backfills a missing source id; drafts keep a nil
	// timestamp.
	assert.Equal(t, "es-doc-2", jobs[1].ID)
	assert.Nil(t, jobs[1].PostedAt)
}

func TestDecodePostings_Malformed(t *testing.T) {
	_, err := decodePostings([]byte("not json"))
	assert.Error(t, err)
}

func TestDecodePostings_Empty(t *testing.T) {
	jobs, err := decodePostings([]byte(`{"hits": {"hits": []}}`))
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
