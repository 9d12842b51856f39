package ocr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Trims and drops blanks, preserves order",
			input:    "  Tim: dinner  \n\n\t7pm Tuesday?\t\n   \n",
			expected: []string{"Tim: dinner", "7pm Tuesday?"},
		},
		{
			name:     "Normalizes CRLF",
			input:    "first\r\nsecond\rthird",
			expected: []string{"first", "second", "third"},
		},
		{
			name:     "Whitespace-only input yields no lines",
			input:    "   \n\t\n \r\n",
			expected: nil,
		},
		{
			name:     "Empty input yields no lines",
			input:    "",
			expected: nil,
		},
		{
			name:     "Single line",
			input:    "hello",
			expected: []string{"hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanLines(tt.input))
		})
	}
}

func TestCleanLinesIdempotent(t *testing.T) {
	raw := "  a \n\n b\t\n\nc  \n"
	once := CleanLines(raw)
	twice := CleanLines(JoinLines(once))
	assert.Equal(t, once, twice, "cleaning twice should equal cleaning once")
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "a\nb", JoinLines([]string{"a", "b"}))
	assert.Equal(t, "", JoinLines(nil))
}

func TestResultLinesWhitespaceOnlyIsEmptyResult(t *testing.T) {
	// A recognizer that produced only whitespace must surface as
	// EmptyResultError, not a successful empty sequence.
	_, err := resultLines(EngineTesseract, "   \n\t\n \r\n")
	require.Error(t, err)

	var empty *EmptyResultError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, EngineTesseract, empty.Engine)
}

func TestResultLinesCleansAndSucceeds(t *testing.T) {
	lines, err := resultLines(EngineVision, "  Tim: dinner \n\n 7pm Tuesday? ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tim: dinner", "7pm Tuesday?"}, lines)
}
