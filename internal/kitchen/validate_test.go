package kitchen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampAcceptedLayouts(t *testing.T) {
	want := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

	for _, value := range []string{
		"2025-06-01T18:30:00Z",
		"2025-06-01T18:30:00+00:00",
		"2025-06-01T18:30:00",
		"2025-06-01 18:30:00",
	} {
		ts, err := ParseTimestamp(value, "window.start")
		require.NoError(t, err, value)
		assert.True(t, ts.Equal(want), value)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	_, err := ParseTimestamp("next tuesday", "window.start")
	require.Error(t, err)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "window.start")
}

func TestParseWindowRequiresBothBounds(t *testing.T) {
	_, err := ParseWindow("", "2025-06-01T20:00:00Z")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestParseWindowRejectsInvertedBounds(t *testing.T) {
	_, err := ParseWindow("2025-06-01T20:00:00Z", "2025-06-01T18:00:00Z")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "later than")

	// Equal bounds are an empty window and equally invalid.
	_, err = ParseWindow("2025-06-01T18:00:00Z", "2025-06-01T18:00:00Z")
	require.ErrorAs(t, err, &validation)
}

func TestParseWindowValid(t *testing.T) {
	window, err := ParseWindow("2025-06-01T18:00:00Z", "2025-06-01T20:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, window.End.Sub(window.Start))

	payload := window.Payload()
	assert.Equal(t, "2025-06-01T18:00:00Z", payload["start"])
	assert.Equal(t, "2025-06-01T20:00:00Z", payload["end"])
}
