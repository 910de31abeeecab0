package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_SizeLimit(t *testing.T) {
	limit := 16

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sanitize(strings.Repeat("a", tt.inputSize), limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitize_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "adrift", "adrift"},
		{"Tab Kept", "a\tb", "a\tb"},
		{"ANSI Code", "\x1b[31m1\x1b[0m", "[31m1[0m"}, // ESC removed
		{"Null Byte", "2\x00", "2"},
		{"Newline", "3\r\n", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitize_InvalidUTF8(t *testing.T) {
	_, err := Sanitize("bad\xffinput", 0)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestMaxInputSize_Env(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")
	assert.Equal(t, 8, MaxInputSize())

	_, err := SanitizeInput("123456789")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	t.Setenv(EnvMaxInputSize, "nonsense")
	assert.Equal(t, DefaultMaxInputSize, MaxInputSize())
}
