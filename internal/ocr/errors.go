package ocr

import "fmt"

// EngineUnavailableError indicates the underlying recognizer is not
// installed or configured. It is reported before any extraction is
// attempted so callers can pick a fallback mode.
type EngineUnavailableError struct {
	Engine EngineID
	Reason string
	Cause  error
}

func (e *EngineUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("OCR engine %s is unavailable: %s: %v", e.Engine, e.Reason, e.Cause)
	}
	return fmt.Sprintf("OCR engine %s is unavailable: %s", e.Engine, e.Reason)
}

func (e *EngineUnavailableError) Unwrap() error {
	return e.Cause
}

// SourceNotFoundError indicates the image path does not resolve to an
// existing file. Distinct from a decodable-but-empty image.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("image not found: %s", e.Path)
}

// EmptyResultError indicates the recognizer ran successfully but produced no
// usable text after cleaning. Fusion relies on this being distinct from
// success so it can substitute a placeholder for the silent engine.
type EmptyResultError struct {
	Engine EngineID
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("OCR engine %s returned no text; try a clearer screenshot", e.Engine)
}

// RecognitionError wraps a recognizer runtime failure that is neither an
// availability nor an empty-result condition.
type RecognitionError struct {
	Engine EngineID
	Cause  error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("OCR engine %s failed: %v", e.Engine, e.Cause)
}

func (e *RecognitionError) Unwrap() error {
	return e.Cause
}
