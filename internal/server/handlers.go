package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jordan/harmony/internal/types"
)

// maxUploadBytes caps image uploads at 15 MB.
const maxUploadBytes = 15 << 20

// handleParseText extracts a structured event from raw message text.
func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	var req types.TextParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	event, err := s.parser.ParseText(r.Context(), req.Text, req.Model, req.ModelString)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.TextParseResponse{Event: event})
}

// handleParseImage extracts a structured event from an uploaded screenshot.
// The image arrives as the multipart field "image"; ocr_mode, model and
// model_string ride along as form values or query parameters.
func (s *Server) handleParseImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing image upload: "+err.Error())
		return
	}
	defer file.Close() //nolint:errcheck

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read image upload: "+err.Error())
		return
	}

	mode := types.OCRModeFusion
	if raw := r.FormValue("ocr_mode"); raw != "" {
		parsed, ok := types.ParseOCRMode(raw)
		if !ok {
			s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown ocr_mode %q", raw))
			return
		}
		mode = parsed
	}

	result, err := s.parser.ParseImage(r.Context(), imageBytes, mode, r.FormValue("model"), r.FormValue("model_string"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ImageParseResponse{
		OCRText: result.OCRText,
		Event:   result.Event,
	})
}
