package kitchen

import "fmt"

// Result statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ContentItem represents one entry in a result envelope: a human-readable
// line, a structured payload, or both in sequence.
type ContentItem struct {
	Text string      `json:"text,omitempty"`
	JSON interface{} `json:"json,omitempty"`
}

// Result represents the uniform envelope returned by every operation.
// Expected domain outcomes such as not-found or an empty recommendation set
// are reported as error envelopes, not Go errors, so callers can react
// without exception handling.
type Result struct {
	Status  string        `json:"status"`
	Content []ContentItem `json:"content"`
}

// Success wraps a structured payload in a success envelope.
func Success(payload interface{}) Result {
	return Result{
		Status:  StatusSuccess,
		Content: []ContentItem{{JSON: payload}},
	}
}

// TextSuccess wraps a human-readable line and an optional structured payload
// in a success envelope.
func TextSuccess(message string, payload interface{}) Result {
	content := []ContentItem{{Text: message}}
	if payload != nil {
		content = append(content, ContentItem{JSON: payload})
	}
	return Result{Status: StatusSuccess, Content: content}
}

// Errorf builds an error envelope with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Result{
		Status:  StatusError,
		Content: []ContentItem{{Text: fmt.Sprintf(format, args...)}},
	}
}

// IsError reports whether the envelope carries a domain error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}
