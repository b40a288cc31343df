// internal/store/postings.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"jobboard-workers/internal/recommend"

	"github.com/elastic/go-elasticsearch/v8"
)

// PostingSource fetches the pool of open postings from the Elasticsearch
// index maintained by the job-board's indexing pipeline.
type PostingSource struct {
	es    *elasticsearch.Client
	index string
	size  int
}

func NewPostingSource(es *elasticsearch.Client, index string, size int) *PostingSource {
	return &PostingSource{es: es, index: index, size: size}
}

// Open returns open postings, most recent first so score ties rank newer
// postings higher downstream.
func (s *PostingSource) Open(ctx context.Context) ([]recommend.Job, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"status": "open"},
		},
		"size": s.size,
		"sort": []map[string]interface{}{
			{"postedAt": map[string]interface{}{"order": "desc", "missing": "_last"}},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("encode postings query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search open postings: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search open postings: %s", res.Status())
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read postings response: %w", err)
	}
	return decodePostings(body)
}

func decodePostings(body []byte) ([]recommend.Job, error) {
	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string        `json:"_id"`
				Source recommend.Job `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode postings response: %w", err)
	}

	jobs := make([]recommend.Job, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		job := hit.Source
		if job.ID == "" {
			job.ID = hit.ID
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
