package llm

import "fmt"

// UpstreamError represents a transport or service failure reaching the
// extraction model.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream error: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError indicates the model reply was not a parseable JSON
// object, even after stripping code fences. Raw carries the offending text
// so the caller can diagnose what came back.
type MalformedResponseError struct {
	Raw   string
	Cause error
}

func (e *MalformedResponseError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("model output was not valid JSON: %v\n%s", e.Cause, e.Raw)
	}
	return fmt.Sprintf("model response missing usable text: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
