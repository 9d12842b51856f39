// Package fusion runs the primary and secondary OCR engines concurrently
// against one image and merges their transcripts into a single annotated
// document. Disagreements between the transcripts are not resolved here;
// that is deferred to the downstream extraction model.
package fusion

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jordan/harmony/internal/ocr"
	"github.com/jordan/harmony/internal/types"
)

// Placeholder stands in for the transcript of an engine that failed or
// found nothing, so the fused document always carries both sections.
const Placeholder = "(no text found)"

// sectionHeaders label each engine's block in the rendered transcript.
var sectionHeaders = map[ocr.EngineID]string{
	ocr.EngineTesseract: "[Tesseract OCR Transcript]",
	ocr.EngineVision:    "[Vision OCR Transcript]",
}

// Fuse extracts text from imagePath with both engines in parallel and
// returns the merged transcript. If exactly one engine fails, its section
// holds the placeholder and fusion still succeeds. If both fail, Fuse
// returns a DualFailureError carrying both causes. The rendered output
// always lists the tesseract section before the vision section, no matter
// which engine finishes first.
func Fuse(ctx context.Context, registry *ocr.Registry, imagePath string) (*types.FusedTranscript, error) {
	run := func(ctx context.Context, id ocr.EngineID) ([]string, error) {
		engine, err := registry.Lookup(id)
		if err != nil {
			return nil, err
		}
		return engine.ExtractLines(ctx, imagePath)
	}

	// Fixed result slots keyed by logical role; each goroutine owns its
	// slot, so no locking is needed and completion order cannot reorder
	// the output. Errors are captured per slot rather than returned, so a
	// failing engine never cancels its sibling.
	var (
		primaryLines, secondaryLines []string
		primaryErr, secondaryErr     error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primaryLines, primaryErr = run(gCtx, ocr.EngineTesseract)
		return nil
	})
	g.Go(func() error {
		secondaryLines, secondaryErr = run(gCtx, ocr.EngineVision)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if primaryErr != nil && secondaryErr != nil {
		return nil, &DualFailureError{Primary: primaryErr, Secondary: secondaryErr}
	}

	primaryText := sectionText(primaryLines, primaryErr)
	secondaryText := sectionText(secondaryLines, secondaryErr)

	return &types.FusedTranscript{
		PrimaryText:   primaryText,
		SecondaryText: secondaryText,
		Rendered:      render(primaryText, secondaryText),
	}, nil
}

func sectionText(lines []string, err error) string {
	if err != nil || len(lines) == 0 {
		return Placeholder
	}
	return ocr.JoinLines(lines)
}

// render composes the annotated document: one labeled, underlined section
// per engine, primary first.
func render(primaryText, secondaryText string) string {
	var sb strings.Builder
	writeSection(&sb, sectionHeaders[ocr.EngineTesseract], primaryText)
	sb.WriteString("\n\n")
	writeSection(&sb, sectionHeaders[ocr.EngineVision], secondaryText)
	return sb.String()
}

func writeSection(sb *strings.Builder, header, text string) {
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", len(header)))
	sb.WriteString("\n")
	sb.WriteString(text)
}

// DualFailureError indicates both OCR engines failed for the same image.
type DualFailureError struct {
	Primary   error
	Secondary error
}

func (e *DualFailureError) Error() string {
	return fmt.Sprintf("both OCR engines failed: %s: %v; %s: %v",
		ocr.EngineTesseract, e.Primary, ocr.EngineVision, e.Secondary)
}
