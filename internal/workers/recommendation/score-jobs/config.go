// internal/workers/recommendation/score-jobs/config.go
package scorejobs

import "time"

type Config struct {
	Timeout time.Duration

	// SlowPassThreshold triggers a warning log when one scoring pass
	// takes longer.
	SlowPassThreshold time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		SlowPassThreshold: 500 * time.Millisecond,
	}
}
