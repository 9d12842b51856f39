// Package types provides type definitions for structured data used throughout the harmony system.
package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Provenance labels how a piece of text was obtained. The downstream
// extraction model uses it to decide how much to trust metadata-shaped
// lines (chat timestamps, UI chrome) versus conversational content.
type Provenance string

// The complete set of provenance tags. Adding a new tag requires updating
// the dispatch switch in the pipeline package.
const (
	ProvenanceText      Provenance = "text"
	ProvenanceTesseract Provenance = "ocr-tesseract"
	ProvenanceVision    Provenance = "ocr-vision"
	ProvenanceFusion    Provenance = "ocr-fusion"
)

// OCRMode selects which OCR path processes an uploaded image.
type OCRMode string

// Supported OCR modes. Fusion runs both engines and merges their transcripts.
const (
	OCRModeTesseract OCRMode = "ocr-tesseract"
	OCRModeVision    OCRMode = "ocr-vision"
	OCRModeFusion    OCRMode = "ocr-fusion"
)

// ParseOCRMode converts a raw mode string into an OCRMode.
// Returns false when the string names no supported mode.
func ParseOCRMode(s string) (OCRMode, bool) {
	switch OCRMode(s) {
	case OCRModeTesseract, OCRModeVision, OCRModeFusion:
		return OCRMode(s), true
	}
	return "", false
}

// RecognitionResult is the output of one OCR engine run. Lines are trimmed,
// non-empty, and in the order the engine produced them. A result with no
// lines is never constructed; engines report EmptyResult instead.
type RecognitionResult struct {
	Engine string
	Lines  []string
}

// FusedTranscript merges two recognition results for the same image.
// Rendered always lists the primary engine's section before the secondary's,
// independent of which engine finished first.
type FusedTranscript struct {
	PrimaryText   string
	SecondaryText string
	Rendered      string
}

// ParseRequest is a unit of work submitted to the extraction boundary.
type ParseRequest struct {
	Content           string
	Provenance        Provenance
	ReferenceDate     string // ISO date anchoring relative expressions ("next Tuesday")
	ReferenceTimezone string // IANA zone name the user is assumed to be in
}

// TextParseRequest is the request body for POST /parse/text.
type TextParseRequest struct {
	Text        string `json:"text" validate:"required,min=1"`
	Model       string `json:"model,omitempty"`
	ModelString string `json:"model_string,omitempty"`
}

// Validate validates the TextParseRequest using the validator.
func (r *TextParseRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TextParseResponse is the response body for POST /parse/text.
type TextParseResponse struct {
	Event json.RawMessage `json:"event"`
}

// ImageParseResponse is the response body for POST /parse/image. OCRText
// carries the raw recognized transcript so callers can audit what the
// engines actually saw before structured interpretation.
type ImageParseResponse struct {
	OCRText string          `json:"ocr_text"`
	Event   json.RawMessage `json:"event"`
}
