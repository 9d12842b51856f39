package pipeline

import "fmt"

// InputError represents a caller mistake: empty text, an empty or
// undecodable upload, or an unsupported mode. Never retried.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// FusionUnavailableError indicates fusion mode was requested but the
// secondary engine is not configured in this deployment. Reported before
// any image I/O.
type FusionUnavailableError struct{}

func (e *FusionUnavailableError) Error() string {
	return "OCR fusion requires the vision engine, which is not available in this deployment"
}
