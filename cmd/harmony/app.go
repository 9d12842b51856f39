package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jordan/harmony/internal/config"
	"github.com/jordan/harmony/internal/llm"
	"github.com/jordan/harmony/internal/ocr"
	"github.com/jordan/harmony/internal/pipeline"
)

// buildPipeline wires the extraction client and whatever OCR engines this
// host can actually run. The returned cleanup closes upstream connections
// and must be called before exit.
func buildPipeline(ctx context.Context) (*pipeline.Pipeline, func(), error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	extractor, err := llm.NewClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create extraction client: %w", err)
	}
	cleanup := func() { _ = extractor.Close() }

	var engines []ocr.Engine

	tesseract := ocr.NewTesseractEngine()
	if err := tesseract.Probe(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: tesseract engine disabled: %v\n", err)
	} else {
		engines = append(engines, tesseract)
	}

	if cfg.VisionOCREnabled {
		vision, err := ocr.NewVisionEngine(ctx, cfg.APIKey, cfg.VisionModel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: vision engine disabled: %v\n", err)
		} else {
			engines = append(engines, vision)
			prev := cleanup
			cleanup = func() {
				_ = vision.Close()
				prev()
			}
		}
	}

	registry := ocr.NewRegistry(engines...)
	return pipeline.New(extractor, registry, location), cleanup, nil
}
