// Package ocr provides optical-character-recognition engine adapters behind a
// uniform extraction contract, plus a registry of the engines available in
// the current deployment.
package ocr

import "context"

// EngineID identifies one OCR implementation.
type EngineID string

const (
	// EngineTesseract is the primary engine. It favors crisp, high-contrast
	// screenshots.
	EngineTesseract EngineID = "tesseract"
	// EngineVision is the secondary engine, backed by a vision model. It
	// handles stylized fonts and low-light photos better than Tesseract but
	// may hallucinate spacing or duplicate lines.
	EngineVision EngineID = "vision"
)

// Engine extracts text lines from an image on disk. Implementations return
// trimmed, non-empty lines in recognition order; an engine that finds no
// usable text reports EmptyResultError rather than an empty slice.
type Engine interface {
	ID() EngineID
	ExtractLines(ctx context.Context, imagePath string) ([]string, error)
}

// Registry holds the engines that were successfully configured at process
// start. Availability is decided once, at construction, so callers get a
// deterministic EngineUnavailableError instead of consulting ambient state.
type Registry struct {
	engines map[EngineID]Engine
}

// NewRegistry builds a registry from the given engines.
func NewRegistry(engines ...Engine) *Registry {
	r := &Registry{engines: make(map[EngineID]Engine, len(engines))}
	for _, e := range engines {
		r.engines[e.ID()] = e
	}
	return r
}

// Lookup returns the engine registered under id, or EngineUnavailableError.
func (r *Registry) Lookup(id EngineID) (Engine, error) {
	engine, ok := r.engines[id]
	if !ok {
		return nil, &EngineUnavailableError{Engine: id, Reason: "not configured in this deployment"}
	}
	return engine, nil
}

// Available reports whether an engine is registered under id.
func (r *Registry) Available(id EngineID) bool {
	_, ok := r.engines[id]
	return ok
}
