package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/suggestions"
	"github.com/jonathan/resume-tailor/internal/summarize"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"request validation", &ErrValidation{Message: "bad"}, http.StatusBadRequest},
		{"empty job text", &summarize.ValidationError{Message: "job description is empty"}, http.StatusBadRequest},
		{"request body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"resume over limit", &ingestion.TooLargeError{Filename: "a.pdf", Limit: 10}, http.StatusRequestEntityTooLarge},
		{"non-pdf upload", &ingestion.UnsupportedTypeError{ContentType: "text/plain"}, http.StatusUnsupportedMediaType},
		{"unreadable pdf", &ingestion.ExtractionError{Filename: "a.pdf", Cause: ingestion.ErrEmptyResume}, http.StatusUnprocessableEntity},
		{"not ready", session.ErrNotReady, http.StatusConflict},
		{"missing key", session.ErrMissingAPIKey, http.StatusServiceUnavailable},
		{"summary api failure", &summarize.APICallError{Message: "x"}, http.StatusBadGateway},
		{"suggestion api failure", &suggestions.APICallError{Message: "x"}, http.StatusBadGateway},
		{"fetch failure", &summarize.FetchError{URL: "https://example.com", Cause: errors.New("x")}, http.StatusBadGateway},
		{"wrapped", fmt.Errorf("analyze: %w", session.ErrNotReady), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "quota exceeded", UserMessage(&suggestions.APICallError{Message: "failed to generate suggestions", Cause: errors.New("quota exceeded")}))
	assert.Equal(t, "quota exceeded", UserMessage(fmt.Errorf("analyze: %w", &suggestions.APICallError{Message: "x", Cause: errors.New("quota exceeded")})))
	assert.Equal(t, "no response", UserMessage(&suggestions.APICallError{Message: "no response"}))
	assert.Equal(t, genericErrorMessage, UserMessage(&summarize.APICallError{Message: "x", Cause: errors.New("quota exceeded")}))
	assert.Contains(t, UserMessage(&ingestion.TooLargeError{Filename: "a.pdf", Limit: 10}), "a.pdf exceeds")
	assert.Equal(t, genericErrorMessage, UserMessage(errors.New("internal detail")))
	assert.Equal(t, session.ErrNotReady.Error(), UserMessage(session.ErrNotReady))
	assert.Contains(t, UserMessage(&ingestion.UnsupportedTypeError{ContentType: "text/plain"}), "unsupported file type")
}
