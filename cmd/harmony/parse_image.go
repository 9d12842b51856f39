package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordan/harmony/internal/observability"
	"github.com/jordan/harmony/internal/pipeline"
	"github.com/jordan/harmony/internal/schemas"
	"github.com/jordan/harmony/internal/types"
)

var parseImageCmd = &cobra.Command{
	Use:   "parse-image <image-path>",
	Short: "Extract a structured event from a screenshot",
	Long:  "Run OCR on a screenshot and extract a structured calendar event from the recognized text.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParseImage,
}

var (
	parseImageMode        string
	parseImageModel       string
	parseImageModelString string
	parseImageValidate    bool
	parseImageVerbose     bool
)

func init() {
	parseImageCmd.Flags().StringVar(&parseImageMode, "ocr-mode", string(types.OCRModeFusion), "OCR mode: ocr-tesseract, ocr-vision, or ocr-fusion")
	parseImageCmd.Flags().StringVar(&parseImageModel, "model", "", "Model alias (flash, flash-lite, pro)")
	parseImageCmd.Flags().StringVar(&parseImageModelString, "model-string", "", "Exact model identifier, bypassing the alias table")
	parseImageCmd.Flags().BoolVar(&parseImageValidate, "validate", false, "Validate the extracted event against the published schema")
	parseImageCmd.Flags().BoolVarP(&parseImageVerbose, "verbose", "v", false, "Print the recognized transcript before the event")
	parseImageCmd.MarkFlagsMutuallyExclusive("model", "model-string")

	rootCmd.AddCommand(parseImageCmd)
}

func runParseImage(_ *cobra.Command, args []string) error {
	mode, ok := types.ParseOCRMode(parseImageMode)
	if !ok {
		return fmt.Errorf("unknown ocr-mode %q (want ocr-tesseract, ocr-vision, or ocr-fusion)", parseImageMode)
	}

	imageBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	ctx := context.Background()

	p, cleanup, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := p.ParseImage(ctx, imageBytes, mode, parseImageModel, parseImageModelString)
	if err != nil {
		return fmt.Errorf("failed to parse image: %w", err)
	}

	if parseImageVerbose {
		printVerbose(os.Stderr, mode, result)
	}

	if parseImageValidate {
		if err := schemas.ValidateEvent(result.Event); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: extracted event does not match schema: %v\n", err)
		}
	}

	return printEvent(result.Event)
}

// printVerbose writes the boxed transcript and event to w; the raw event
// JSON still goes to stdout so output stays pipeable.
func printVerbose(w io.Writer, mode types.OCRMode, result *pipeline.ImageResult) {
	printer := observability.NewPrinter(w)
	printer.PrintTranscript(mode, result.OCRText)
	printer.PrintEvent(result.Event)
}

// printEvent writes the event JSON to stdout, indented.
func printEvent(event json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, event, "", "  "); err != nil {
		return fmt.Errorf("failed to format event JSON: %w", err)
	}
	fmt.Println(buf.String())
	return nil
}
