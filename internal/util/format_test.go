package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{
			name:     "zero",
			input:    0,
			expected: "0h 0m 0s",
		},
		{
			name:     "seconds only",
			input:    59,
			expected: "0h 0m 59s",
		},
		{
			name:     "one minute",
			input:    60,
			expected: "0h 1m 0s",
		},
		{
			name:     "hours minutes seconds",
			input:    2*3600 + 3*60 + 4,
			expected: "2h 3m 4s",
		},
		{
			name:     "exactly one day wraps",
			input:    86400,
			expected: "0h 0m 0s",
		},
		{
			name:     "over a day",
			input:    86400 + 3600 + 1,
			expected: "1h 0m 1s",
		},
		{
			name:     "negative treated as zero",
			input:    -5,
			expected: "0h 0m 0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatElapsed(tt.input))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "seconds",
			input:    12 * time.Second,
			expected: "12s",
		},
		{
			name:     "minutes",
			input:    3*time.Minute + 7*time.Second,
			expected: "3m 7s",
		},
		{
			name:     "hours",
			input:    time.Hour + 30*time.Second,
			expected: "1h 0m 30s",
		},
		{
			name:     "days",
			input:    50 * time.Hour,
			expected: "2d 2h 0m",
		},
		{
			name:     "negative",
			input:    -time.Second,
			expected: "0s",
		},
		{
			name:     "sub-second truncated",
			input:    900 * time.Millisecond,
			expected: "0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.input))
		})
	}
}

func TestFormatCounter(t *testing.T) {
	assert.Equal(t, "3/20", FormatCounter(3, 20))
}
