package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{
			name:     "mixed case duplicates collapse",
			input:    []string{" Admin@Example.com ", "admin@example.com", "OPS@example.com"},
			expected: []string{"admin@example.com", "ops@example.com"},
		},
		{
			name:     "blank entries dropped",
			input:    []string{"", "  ", "a@example.com"},
			expected: []string{"a@example.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrimLower(tt.input))
		})
	}
}
