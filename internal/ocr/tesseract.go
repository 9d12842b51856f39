package ocr

import (
	"context"
	"os"
	"path/filepath"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes text with the Tesseract library via gosseract.
// A fresh client is created per extraction; gosseract clients are cheap and
// not safe for concurrent reuse.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs the Tesseract-backed engine.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{clientFactory: gosseract.NewClient}
}

// ID returns the engine identifier.
func (e *TesseractEngine) ID() EngineID { return EngineTesseract }

// Probe checks that the Tesseract runtime and at least one trained language
// are present. Run once at startup; a failed probe keeps the engine out of
// the registry so callers see EngineUnavailableError instead of a crash
// mid-extraction.
func (e *TesseractEngine) Probe() error {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return &EngineUnavailableError{
			Engine: EngineTesseract,
			Reason: "tesseract runtime not installed (e.g. `brew install tesseract`)",
			Cause:  err,
		}
	}
	if len(langs) == 0 {
		return &EngineUnavailableError{
			Engine: EngineTesseract,
			Reason: "no trained language data found",
		}
	}
	return nil
}

// ExtractLines recognizes the image at imagePath and returns cleaned lines.
func (e *TesseractEngine) ExtractLines(ctx context.Context, imagePath string) ([]string, error) {
	resolved, err := filepath.Abs(imagePath)
	if err != nil {
		resolved = imagePath
	}
	if _, err := os.Stat(resolved); err != nil {
		return nil, &SourceNotFoundError{Path: resolved}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	client := e.clientFactory()
	defer func() { _ = client.Close() }()

	if err := client.SetImage(resolved); err != nil {
		return nil, &RecognitionError{Engine: EngineTesseract, Cause: err}
	}

	text, err := client.Text()
	if err != nil {
		return nil, &RecognitionError{Engine: EngineTesseract, Cause: err}
	}

	return resultLines(EngineTesseract, text)
}
