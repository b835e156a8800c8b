package kitchen

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents malformed or logically invalid input. It is
// raised to the caller as a hard failure, never silently corrected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Window represents a half-open planning interval. Start also keys the prep
// plan it generates.
type Window struct {
	Start time.Time
	End   time.Time
}

// timestamp layouts accepted for window bounds, ISO-8601 with or without an
// explicit offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp, returning a ValidationError
// naming the offending field when it does not parse.
func ParseTimestamp(value, fieldName string) (time.Time, error) {
	normalized := strings.Replace(value, "Z", "+00:00", 1)
	if strings.Contains(normalized, "+00:00") {
		normalized = strings.Replace(normalized, "+00:00", "Z", 1)
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, normalized); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, validationErrorf("invalid timestamp for %s: %s", fieldName, value)
}

// ParseWindow validates a planning window: both bounds must parse and the end
// must be later than the start.
func ParseWindow(start, end string) (Window, error) {
	if start == "" || end == "" {
		return Window{}, validationErrorf("window.start and window.end are required ISO-8601 timestamps")
	}
	startAt, err := ParseTimestamp(start, "window.start")
	if err != nil {
		return Window{}, err
	}
	endAt, err := ParseTimestamp(end, "window.end")
	if err != nil {
		return Window{}, err
	}
	if !endAt.After(startAt) {
		return Window{}, validationErrorf("window.end must be later than window.start")
	}
	return Window{Start: startAt, End: endAt}, nil
}

// Payload returns the window as a serializable map for rationale traces.
func (w Window) Payload() map[string]string {
	return map[string]string{
		"start": w.Start.Format(time.RFC3339),
		"end":   w.End.Format(time.RFC3339),
	}
}
