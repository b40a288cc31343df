// internal/recommend/fields_test.go
package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "valid list",
			raw:      `["React", "Node.js", "TypeScript"]`,
			expected: []string{"react", "node.js", "typescript"},
		},
		{
			name:     "trims and lowercases",
			raw:      `["  Go ", "PYTHON"]`,
			expected: []string{"go", "python"},
		},
		{
			name:     "drops empty entries",
			raw:      `["react", "", "   "]`,
			expected: []string{"react"},
		},
		{
			name:     "empty string",
			raw:      "",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			raw:      "   ",
			expected: []string{},
		},
		{
			name:     "not json",
			raw:      "react, node",
			expected: []string{},
		},
		{
			name:     "json but not a list",
			raw:      `{"skill": "react"}`,
			expected: []string{},
		},
		{
			name:     "list of non-strings",
			raw:      `[1, 2, 3]`,
			expected: []string{},
		},
		{
			name:     "empty list",
			raw:      `[]`,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseStringList(tt.raw)
			assert.Equal(t, tt.expected, result)
			assert.NotNil(t, result)
		})
	}
}
