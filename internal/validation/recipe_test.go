package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlaceholders(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"N/A", true},
		{"unknown", true},
		{"Not Specified", true},
		{"[placeholder]", true},
		{"<TBD>", true},
		{"valid ingredient", false},
		{"Salt", false},
		{"", true},
		{"   ", true},
		{"xxx", true},
		{"2 cups (480 ml) water", false},
		{"(optional) parsley", false},
	}

	for _, tt := range tests {
		result := DetectPlaceholders(tt.text)
		if result != tt.expected {
			t.Errorf("DetectPlaceholders(%q) = %v; want %v", tt.text, result, tt.expected)
		}
	}
}

func TestCleanEntries(t *testing.T) {
	got := CleanEntries([]string{"  Chop the onion. ", "", "N/A", "Fry it.", "[step]"})
	assert.Equal(t, []string{"Chop the onion.", "Fry it."}, got)

	assert.NotNil(t, CleanEntries(nil))
	assert.Empty(t, CleanEntries(nil))
}
