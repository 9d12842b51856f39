// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jordan/harmony/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxTranscriptLines caps how much of a transcript is echoed back
	maxTranscriptLines = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTranscript echoes the recognized text that is about to be sent
// upstream, labelled with the OCR mode that produced it.
func (p *Printer) PrintTranscript(mode types.OCRMode, text string) {
	lines := strings.Split(text, "\n")
	if len(lines) > maxTranscriptLines {
		omitted := len(lines) - maxTranscriptLines
		lines = append(lines[:maxTranscriptLines], fmt.Sprintf("... and %d more lines", omitted))
	}

	title := fmt.Sprintf("TRANSCRIPT (%s)", strings.ToUpper(string(mode)))
	p.printBox(title, strings.Join(lines, "\n"))
}

// PrintEvent pretty-prints the extracted event JSON.
func (p *Printer) PrintEvent(event json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, event, "", "  "); err != nil {
		// Fall back to the raw bytes if the reply is not valid JSON.
		p.printBox("EXTRACTED EVENT", string(event))
		return
	}
	p.printBox("EXTRACTED EVENT", buf.String())
}
