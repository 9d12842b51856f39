package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/harmony/internal/fusion"
	"github.com/jordan/harmony/internal/ocr"
	"github.com/jordan/harmony/internal/types"
)

// fakeExtractor records the requests it receives and returns a canned event.
type fakeExtractor struct {
	calls []types.ParseRequest
	model string
	event json.RawMessage
	err   error
}

func (f *fakeExtractor) ExtractEvent(_ context.Context, req types.ParseRequest, model string) (json.RawMessage, error) {
	f.calls = append(f.calls, req)
	f.model = model
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

// fakeEngine serves canned lines and records whether it was invoked.
type fakeEngine struct {
	id     ocr.EngineID
	lines  []string
	err    error
	called bool
}

func (f *fakeEngine) ID() ocr.EngineID { return f.id }

func (f *fakeEngine) ExtractLines(_ context.Context, path string) ([]string, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.lines, nil
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestPipeline(extractor *fakeExtractor, engines ...ocr.Engine) *Pipeline {
	p := New(extractor, ocr.NewRegistry(engines...), time.UTC)
	p.now = func() time.Time { return time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC) }
	return p
}

func TestParseTextTagsProvenance(t *testing.T) {
	extractor := &fakeExtractor{event: json.RawMessage(`{"event_title":"dinner"}`)}
	p := newTestPipeline(extractor)

	event, err := p.ParseText(context.Background(), "dinner at 7 next Tuesday?", "", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"event_title":"dinner"}`, string(event))

	require.Len(t, extractor.calls, 1)
	req := extractor.calls[0]
	assert.Equal(t, types.ProvenanceText, req.Provenance)
	assert.Equal(t, "dinner at 7 next Tuesday?", req.Content)
	assert.Equal(t, "2026-08-26", req.ReferenceDate)
	assert.Equal(t, "UTC", req.ReferenceTimezone)
	assert.Equal(t, "gemini-2.5-flash", extractor.model)
}

func TestParseTextEmpty(t *testing.T) {
	extractor := &fakeExtractor{}
	p := newTestPipeline(extractor)

	_, err := p.ParseText(context.Background(), "   ", "", "")
	require.Error(t, err)

	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))
	assert.Empty(t, extractor.calls, "extraction must not be attempted")
}

func TestParseTextUnknownModelAliasNoExtractionCall(t *testing.T) {
	extractor := &fakeExtractor{}
	p := newTestPipeline(extractor)

	_, err := p.ParseText(context.Background(), "dinner?", "gpt-9000", "")
	require.Error(t, err)

	var invalidModel *types.InvalidModelError
	require.True(t, errors.As(err, &invalidModel))
	assert.Empty(t, extractor.calls, "rejection must happen before any network call")
}

func TestParseImageSingleEngine(t *testing.T) {
	extractor := &fakeExtractor{event: json.RawMessage(`{"event_title":"dinner"}`)}
	tess := &fakeEngine{id: ocr.EngineTesseract, lines: []string{"Tim: dinner", "7pm Tuesday?"}}
	p := newTestPipeline(extractor, tess)

	result, err := p.ParseImage(context.Background(), testPNG(t), types.OCRModeTesseract, "", "")
	require.NoError(t, err)

	assert.Equal(t, "Tim: dinner\n7pm Tuesday?", result.OCRText)
	require.Len(t, extractor.calls, 1)
	assert.Equal(t, "Tim: dinner\n7pm Tuesday?", extractor.calls[0].Content)
	assert.Equal(t, types.ProvenanceTesseract, extractor.calls[0].Provenance)
}

func TestParseImageVisionProvenance(t *testing.T) {
	extractor := &fakeExtractor{event: json.RawMessage(`{}`)}
	vision := &fakeEngine{id: ocr.EngineVision, lines: []string{"brunch?"}}
	p := newTestPipeline(extractor, vision)

	_, err := p.ParseImage(context.Background(), testPNG(t), types.OCRModeVision, "", "")
	require.NoError(t, err)
	assert.Equal(t, types.ProvenanceVision, extractor.calls[0].Provenance)
}

func TestParseImageFusion(t *testing.T) {
	extractor := &fakeExtractor{event: json.RawMessage(`{}`)}
	tess := &fakeEngine{id: ocr.EngineTesseract, lines: []string{"movie at 9"}}
	vision := &fakeEngine{id: ocr.EngineVision, lines: []string{"movie at 9pm"}}
	p := newTestPipeline(extractor, tess, vision)

	result, err := p.ParseImage(context.Background(), testPNG(t), types.OCRModeFusion, "", "")
	require.NoError(t, err)

	assert.Contains(t, result.OCRText, "[Tesseract OCR Transcript]")
	assert.Contains(t, result.OCRText, "movie at 9")
	assert.Contains(t, result.OCRText, "[Vision OCR Transcript]")
	assert.Contains(t, result.OCRText, "movie at 9pm")
	assert.Equal(t, types.ProvenanceFusion, extractor.calls[0].Provenance)
	assert.Equal(t, result.OCRText, extractor.calls[0].Content,
		"extraction must receive the full rendered transcript")
}

func TestParseImageFusionToleratesOneFailure(t *testing.T) {
	extractor := &fakeExtractor{event: json.RawMessage(`{}`)}
	tess := &fakeEngine{id: ocr.EngineTesseract, lines: []string{"movie at 9"}}
	vision := &fakeEngine{id: ocr.EngineVision, err: &ocr.EmptyResultError{Engine: ocr.EngineVision}}
	p := newTestPipeline(extractor, tess, vision)

	result, err := p.ParseImage(context.Background(), testPNG(t), types.OCRModeFusion, "", "")
	require.NoError(t, err)
	assert.Contains(t, result.OCRText, fusion.Placeholder)
	assert.Contains(t, result.OCRText, "movie at 9")
}

func TestParseImageFusionUnavailableFailsBeforeImageIO(t *testing.T) {
	extractor := &fakeExtractor{}
	tess := &fakeEngine{id: ocr.EngineTesseract, lines: []string{"x"}}
	p := newTestPipeline(extractor, tess) // no vision engine registered

	// Pass bytes that are not even a decodable image: the precondition
	// check must fire before decoding or temp-file I/O would reject them.
	_, err := p.ParseImage(context.Background(), []byte("not an image"), types.OCRModeFusion, "", "")
	require.Error(t, err)

	var fusionErr *FusionUnavailableError
	assert.True(t, errors.As(err, &fusionErr))
	assert.False(t, tess.called, "no OCR work should start")
	assert.Empty(t, extractor.calls)
}

func TestParseImageEngineUnavailable(t *testing.T) {
	extractor := &fakeExtractor{}
	p := newTestPipeline(extractor) // empty registry

	_, err := p.ParseImage(context.Background(), testPNG(t), types.OCRModeTesseract, "", "")
	require.Error(t, err)

	var unavailable *ocr.EngineUnavailableError
	assert.True(t, errors.As(err, &unavailable))
	assert.Empty(t, extractor.calls, "extraction must not run when OCR fails")
}

func TestParseImageEmptyUpload(t *testing.T) {
	p := newTestPipeline(&fakeExtractor{})

	_, err := p.ParseImage(context.Background(), nil, types.OCRModeTesseract, "", "")
	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestParseImageUndecodableUpload(t *testing.T) {
	tess := &fakeEngine{id: ocr.EngineTesseract, lines: []string{"x"}}
	p := newTestPipeline(&fakeExtractor{}, tess)

	_, err := p.ParseImage(context.Background(), []byte("plainly not an image"), types.OCRModeTesseract, "", "")
	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))
	assert.False(t, tess.called)
}

func TestParseImageOCRFailurePropagates(t *testing.T) {
	extractor := &fakeExtractor{}
	tess := &fakeEngine{id: ocr.EngineTesseract, err: &ocr.EmptyResultError{Engine: ocr.EngineTesseract}}
	p := newTestPipeline(extractor, tess)

	_, err := p.ParseImage(context.Background(), testPNG(t), types.OCRModeTesseract, "", "")
	require.Error(t, err)

	var empty *ocr.EmptyResultError
	assert.True(t, errors.As(err, &empty))
	assert.Empty(t, extractor.calls)
}
