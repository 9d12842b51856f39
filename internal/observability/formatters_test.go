package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jordan/harmony/internal/types"
)

func TestPrintTranscript(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTranscript(types.OCRModeTesseract, "Tim: dinner\n7pm Tuesday?")

	out := buf.String()
	assert.Contains(t, out, "TRANSCRIPT (OCR-TESSERACT)")
	assert.Contains(t, out, "Tim: dinner")
	assert.Contains(t, out, "7pm Tuesday?")
}

func TestPrintTranscriptTruncatesLongText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	p.PrintTranscript(types.OCRModeFusion, strings.Join(lines, "\n"))

	assert.Contains(t, buf.String(), "... and 10 more lines")
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvent(json.RawMessage(`{"event_title":"Dinner"}`))

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED EVENT")
	assert.Contains(t, out, `"event_title"`)
}

func TestPrintEventInvalidJSONFallsBack(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvent(json.RawMessage(`not json`))

	assert.Contains(t, buf.String(), "not json")
}
