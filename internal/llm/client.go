// Package llm provides the client boundary to the remote text-to-JSON
// extraction model. The core sends a fixed system instruction plus a
// provenance-tagged user message and treats the reply as an opaque JSON
// object.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jordan/harmony/internal/prompts"
	"github.com/jordan/harmony/internal/types"
)

// Extractor is the boundary the dispatch layer depends on. The concrete
// Client talks to Gemini; tests substitute fakes.
type Extractor interface {
	ExtractEvent(ctx context.Context, req types.ParseRequest, model string) (json.RawMessage, error)
}

// Client implements Extractor against the Gemini API.
type Client struct {
	client *genai.Client
}

// NewClient creates an extraction client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction client: %w", err)
	}

	return &Client{client: client}, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ExtractEvent sends the parse request to the given model and returns the
// structured event as raw JSON. The reply must be a JSON object, possibly
// wrapped in a fenced code block; anything else is a MalformedResponseError
// carrying the offending text. The client never retries.
func (c *Client) ExtractEvent(ctx context.Context, req types.ParseRequest, model string) (json.RawMessage, error) {
	m := c.client.GenerativeModel(model)
	m.SetTemperature(0.2)
	m.ResponseMIMEType = "application/json"
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompts.MustGet("harmony.json", "system-event-extraction"))},
	}

	userMessage := BuildUserMessage(req)

	resp, err := m.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		return nil, &UpstreamError{Message: "extraction call failed", Cause: err}
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, &MalformedResponseError{Raw: "", Cause: err}
	}

	return DecodeEventJSON(text)
}

// BuildUserMessage renders the per-call user message: the provenance tag,
// the content to interpret, and the reference date/timezone anchors.
func BuildUserMessage(req types.ParseRequest) string {
	template := prompts.MustGet("harmony.json", "user-parse-request")
	return prompts.Format(template, map[string]string{
		"SourceType": string(req.Provenance),
		"Content":    strings.TrimSpace(req.Content),
		"Today":      req.ReferenceDate,
		"Timezone":   req.ReferenceTimezone,
	})
}

// DecodeEventJSON strips any fenced code block wrapper and verifies the
// reply parses as a JSON object. The original reply text travels with the
// error for diagnosis.
func DecodeEventJSON(raw string) (json.RawMessage, error) {
	cleaned := CleanJSONBlock(raw)

	var event map[string]any
	if err := json.Unmarshal([]byte(cleaned), &event); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Cause: err}
	}
	if event == nil {
		return nil, &MalformedResponseError{Raw: raw, Cause: fmt.Errorf("reply is not a JSON object")}
	}
	return json.RawMessage(cleaned), nil
}

// responseText extracts the text parts from a Gemini response.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
