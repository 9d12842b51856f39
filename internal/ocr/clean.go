package ocr

import "strings"

// CleanLines normalizes raw recognizer output into the line contract shared
// by every engine: CRLF folded to LF, each line trimmed, blank lines
// dropped, relative order preserved. The operation is idempotent.
func CleanLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// JoinLines renders cleaned lines back into a newline-joined transcript.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// resultLines cleans raw recognizer output and classifies a result with no
// usable text as EmptyResultError, never as an empty success. Every engine
// adapter returns through here.
func resultLines(engine EngineID, raw string) ([]string, error) {
	lines := CleanLines(raw)
	if len(lines) == 0 {
		return nil, &EmptyResultError{Engine: engine}
	}
	return lines, nil
}
