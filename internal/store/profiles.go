// internal/store/profiles.go

// Package store reads seeker profiles and open postings from the data
// stores owned by the surrounding application. The recommendation engine
// never touches these; workers resolve inputs here and hand plain values
// to the engine.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jobboard-workers/internal/recommend"

	"github.com/redis/go-redis/v9"
)

// ProfileStore loads job seeker profiles from PostgreSQL with a Redis
// cache in front.
type ProfileStore struct {
	db    *sql.DB
	cache *redis.Client
	ttl   time.Duration
}

func NewProfileStore(db *sql.DB, cache *redis.Client, ttl time.Duration) *ProfileStore {
	return &ProfileStore{db: db, cache: cache, ttl: ttl}
}

// Get returns the stored profile for a user. The serialized list fields
// come back as-is; the engine parses them defensively.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*recommend.Profile, error) {
	cacheKey := "seeker:profile:" + userID
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var profile recommend.Profile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT skills, preferred_job_types, location, experience
		FROM job_seeker_profiles WHERE user_id = $1`, userID)

	var skills, prefTypes, location, experience sql.NullString
	if err := row.Scan(&skills, &prefTypes, &location, &experience); err != nil {
		return nil, fmt.Errorf("load profile %s: %w", userID, err)
	}

	profile := &recommend.Profile{
		Skills:         skills.String,
		PreferredTypes: prefTypes.String,
		Location:       location.String,
		Experience:     experience.String,
	}

	if s.cache != nil {
		if data, err := json.Marshal(profile); err == nil {
			s.cache.Set(ctx, cacheKey, data, s.ttl)
		}
	}

	return profile, nil
}
