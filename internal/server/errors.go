package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/suggestions"
	"github.com/jonathan/resume-tailor/internal/summarize"
)

// genericErrorMessage is shown for failures whose detail only belongs in the log.
const genericErrorMessage = "Something went wrong. Please try again."

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		jobErr         *summarize.ValidationError
		unsupportedErr *ingestion.UnsupportedTypeError
		extractionErr  *ingestion.ExtractionError
		bodyLimitErr   *http.MaxBytesError
		tooLargeErr    *ingestion.TooLargeError
		summaryErr     *summarize.APICallError
		suggestionErr  *suggestions.APICallError
		fetchErr       *summarize.FetchError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &jobErr):
		return http.StatusBadRequest
	case errors.As(err, &bodyLimitErr), errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupportedErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrNotReady):
		return http.StatusConflict
	case errors.Is(err, session.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.As(err, &summaryErr), errors.As(err, &suggestionErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the text shown to the user for err. Input problems are
// reported as-is. A failed suggestion call shows the model client's error so the
// analyze alert can name it; other upstream and internal failures get a generic
// message.
func UserMessage(err error) string {
	var suggestionErr *suggestions.APICallError
	if errors.As(err, &suggestionErr) {
		if suggestionErr.Cause != nil {
			return suggestionErr.Cause.Error()
		}
		return suggestionErr.Message
	}

	switch HTTPStatus(err) {
	case http.StatusBadGateway, http.StatusInternalServerError:
		return genericErrorMessage
	default:
		return err.Error()
	}
}
