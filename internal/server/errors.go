package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jordan/harmony/internal/fusion"
	"github.com/jordan/harmony/internal/llm"
	"github.com/jordan/harmony/internal/ocr"
	"github.com/jordan/harmony/internal/pipeline"
	"github.com/jordan/harmony/internal/types"
)

// HTTPStatus maps pipeline errors onto HTTP status codes. Caller mistakes
// are 400s, images that recognized cleanly but carried no text are 422s,
// missing local capability is 503, and a misbehaving upstream is 502.
func HTTPStatus(err error) int {
	var (
		inputErr       *pipeline.InputError
		modelErr       *types.InvalidModelError
		notFoundErr    *ocr.SourceNotFoundError
		validationErrs validator.ValidationErrors
		emptyErr       *ocr.EmptyResultError
		dualErr        *fusion.DualFailureError
		unavailableErr *ocr.EngineUnavailableError
		fusionErr      *pipeline.FusionUnavailableError
		upstreamErr    *llm.UpstreamError
		malformedErr   *llm.MalformedResponseError
	)

	switch {
	case errors.As(err, &inputErr),
		errors.As(err, &modelErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.As(err, &emptyErr),
		errors.As(err, &dualErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailableErr),
		errors.As(err, &fusionErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstreamErr),
		errors.As(err, &malformedErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
