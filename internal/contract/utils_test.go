package contract

import (
	"testing"

	"github.com/costwatch/costwatch/schema"
	"github.com/stretchr/testify/assert"
)

// TestGetColorLabel verifies each severity keeps its canonical text under color.
func TestGetColorLabel(t *testing.T) {
	for _, s := range []schema.Severity{
		schema.SeverityLow, schema.SeverityMedium, schema.SeverityHigh, schema.SeverityCritical,
	} {
		assert.Contains(t, GetColorLabel(s), s.String())
	}
}

// TestTruncateText covers boundaries of the ellipsis logic.
func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		expected string
	}{
		{"short text unchanged", "spend", 10, "spend"},
		{"exact width unchanged", "spend", 5, "spend"},
		{"truncated with ellipsis", "a sustained increase in spend", 10, "a susta..."},
		{"tiny width unchanged", "spend!", 3, "spend!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.maxWidth))
		})
	}
}

// TestParseBoolString covers accepted and rejected values.
func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}
