// internal/recommend/fields.go
package recommend

import (
	"encoding/json"
	"strings"
)

// ParseStringList decodes a serialized list field into trimmed, lowercased
// strings. Profiles are frequently incomplete, so anything that is not a
// valid JSON array of strings degrades to an empty list rather than an
// error; a bad field must demote one criterion, not abort the pass.
func ParseStringList(raw string) []string {
	out := []string{}
	if strings.TrimSpace(raw) == "" {
		return out
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return out
	}

	for _, item := range items {
		trimmed := strings.ToLower(strings.TrimSpace(item))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
