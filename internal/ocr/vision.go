package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	// Register decoders for the screenshot formats we accept.
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jordan/harmony/internal/prompts"
)

// DefaultVisionModel is the vision model used for transcription unless the
// deployment overrides it.
const DefaultVisionModel = "gemini-2.5-flash"

// VisionEngine recognizes text with a multimodal vision model. It trades
// Tesseract's layout fidelity for robustness on stylized fonts and low-light
// photos.
type VisionEngine struct {
	client *genai.Client
	model  string
}

// NewVisionEngine constructs the vision-backed engine. The API key is the
// availability capability: callers should only construct and register the
// engine when a key is configured.
func NewVisionEngine(ctx context.Context, apiKey, model string) (*VisionEngine, error) {
	if apiKey == "" {
		return nil, &EngineUnavailableError{Engine: EngineVision, Reason: "no API key configured"}
	}
	if model == "" {
		model = DefaultVisionModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &EngineUnavailableError{Engine: EngineVision, Reason: "failed to create client", Cause: err}
	}

	return &VisionEngine{client: client, model: model}, nil
}

// ID returns the engine identifier.
func (e *VisionEngine) ID() EngineID { return EngineVision }

// Close releases the underlying API client.
func (e *VisionEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ExtractLines sends the image to the vision model with a transcription-only
// instruction and returns cleaned lines.
func (e *VisionEngine) ExtractLines(ctx context.Context, imagePath string) ([]string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &SourceNotFoundError{Path: imagePath}
		}
		return nil, &RecognitionError{Engine: EngineVision, Cause: err}
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &RecognitionError{Engine: EngineVision, Cause: fmt.Errorf("decode image: %w", err)}
	}

	model := e.client.GenerativeModel(e.model)
	model.SetTemperature(0) // transcription, not generation

	instruction := prompts.MustGet("harmony.json", "vision-transcribe")
	resp, err := model.GenerateContent(ctx, genai.ImageData(format, data), genai.Text(instruction))
	if err != nil {
		return nil, &RecognitionError{Engine: EngineVision, Cause: err}
	}

	text, err := transcriptFromResponse(resp)
	if err != nil {
		return nil, &RecognitionError{Engine: EngineVision, Cause: err}
	}

	return resultLines(EngineVision, text)
}

// transcriptFromResponse pulls the text parts out of a vision model response.
func transcriptFromResponse(resp *genai.GenerateContentResponse) (string, error) {
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
