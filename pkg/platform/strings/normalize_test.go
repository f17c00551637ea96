package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "already canonical",
			input:    "DE89370400440532013000",
			expected: "DE89370400440532013000",
		},
		{
			name:     "printable grouping",
			input:    "de89 3704 0044 0532 0130 00",
			expected: "DE89370400440532013000",
		},
		{
			name:     "tabs and newlines",
			input:    "\tFR14\n2004\r\n1010",
			expected: "FR1420041010",
		},
		{
			name:     "non-ascii untouched beyond case",
			input:    "ab-cé",
			expected: "AB-Cé",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}
