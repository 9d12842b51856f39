// Package pipeline is the source-tagged dispatch layer: it decides which
// OCR path (if any) produces the text, attaches the matching provenance tag,
// and forwards the tagged request to the extraction boundary.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	// Register decoders for the upload formats we accept.
	_ "image/jpeg"
	_ "image/png"

	"github.com/jordan/harmony/internal/fusion"
	"github.com/jordan/harmony/internal/llm"
	"github.com/jordan/harmony/internal/ocr"
	"github.com/jordan/harmony/internal/types"
)

// ImageResult pairs the structured event with the raw OCR transcript that
// produced it. Exposing the transcript is deliberate: callers must be able
// to audit what was recognized before structured interpretation.
type ImageResult struct {
	OCRText string
	Event   json.RawMessage
}

// Pipeline orchestrates OCR dispatch and extraction.
type Pipeline struct {
	extractor llm.Extractor
	registry  *ocr.Registry
	location  *time.Location
	tzName    string
	now       func() time.Time
}

// New builds a pipeline over the given extraction client, engine registry,
// and the timezone used to anchor relative dates.
func New(extractor llm.Extractor, registry *ocr.Registry, location *time.Location) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		registry:  registry,
		location:  location,
		tzName:    location.String(),
		now:       time.Now,
	}
}

// ParseText forwards a raw text snippet to the extraction boundary with the
// "text" provenance tag.
func (p *Pipeline) ParseText(ctx context.Context, text, modelAlias, modelString string) (json.RawMessage, error) {
	return p.parseTagged(ctx, text, types.ProvenanceText, modelAlias, modelString)
}

// ParseImage runs the selected OCR mode over the uploaded image bytes and
// forwards the provenance-tagged transcript to the extraction boundary.
// Preconditions (model resolution, engine availability) are verified before
// any image I/O so a doomed request fails without side effects.
func (p *Pipeline) ParseImage(ctx context.Context, imageBytes []byte, mode types.OCRMode, modelAlias, modelString string) (*ImageResult, error) {
	if len(imageBytes) == 0 {
		return nil, &InputError{Message: "uploaded image is empty"}
	}

	model, err := types.ResolveModelChoice(modelAlias, modelString)
	if err != nil {
		return nil, err
	}

	// Resolve engines and the provenance tag for this mode before touching
	// the filesystem. The switch is exhaustive over OCRMode: a new mode
	// must be wired here.
	var (
		engines    []ocr.Engine
		provenance types.Provenance
	)
	switch mode {
	case types.OCRModeTesseract:
		engine, err := p.registry.Lookup(ocr.EngineTesseract)
		if err != nil {
			return nil, err
		}
		engines = []ocr.Engine{engine}
		provenance = types.ProvenanceTesseract
	case types.OCRModeVision:
		engine, err := p.registry.Lookup(ocr.EngineVision)
		if err != nil {
			return nil, err
		}
		engines = []ocr.Engine{engine}
		provenance = types.ProvenanceVision
	case types.OCRModeFusion:
		// Callers who asked for fusion get fusion or an explicit error,
		// never a silent downgrade to a single engine.
		if !p.registry.Available(ocr.EngineVision) {
			return nil, &FusionUnavailableError{}
		}
		provenance = types.ProvenanceFusion
	default:
		return nil, &InputError{Message: fmt.Sprintf("unsupported OCR mode: %s", mode)}
	}

	imagePath, cleanup, err := writeTempImage(imageBytes)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var ocrText string
	if mode == types.OCRModeFusion {
		transcript, err := fusion.Fuse(ctx, p.registry, imagePath)
		if err != nil {
			return nil, err
		}
		ocrText = transcript.Rendered
	} else {
		lines, err := engines[0].ExtractLines(ctx, imagePath)
		if err != nil {
			return nil, err
		}
		ocrText = ocr.JoinLines(lines)
	}

	event, err := p.extract(ctx, ocrText, provenance, model)
	if err != nil {
		return nil, err
	}

	return &ImageResult{OCRText: ocrText, Event: event}, nil
}

// parseTagged validates the text and model choice, then extracts.
func (p *Pipeline) parseTagged(ctx context.Context, text string, provenance types.Provenance, modelAlias, modelString string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &InputError{Message: "cannot parse an empty text snippet"}
	}

	model, err := types.ResolveModelChoice(modelAlias, modelString)
	if err != nil {
		return nil, err
	}

	return p.extract(ctx, text, provenance, model)
}

func (p *Pipeline) extract(ctx context.Context, content string, provenance types.Provenance, model string) (json.RawMessage, error) {
	req := types.ParseRequest{
		Content:           content,
		Provenance:        provenance,
		ReferenceDate:     p.now().In(p.location).Format("2006-01-02"),
		ReferenceTimezone: p.tzName,
	}
	return p.extractor.ExtractEvent(ctx, req, model)
}

// writeTempImage verifies the bytes decode as an image and persists them to
// a private temp file for the path-oriented engines. The returned cleanup
// runs on every exit path of the caller.
func writeTempImage(data []byte) (string, func(), error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", nil, &InputError{Message: "uploaded file is not a valid image", Cause: err}
	}

	file, err := os.CreateTemp("", "harmony-*."+format)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp image: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", nil, fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return "", nil, fmt.Errorf("failed to close temp image: %w", err)
	}

	path := file.Name()
	return path, func() { _ = os.Remove(path) }, nil
}
