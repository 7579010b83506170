package ingestion

import (
	"errors"
	"fmt"
)

// ErrEmptyResume is returned when a PDF yields no extractable text
var ErrEmptyResume = errors.New("no text could be extracted from the resume")

// UnsupportedTypeError is returned for uploads that are not PDF documents
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	if e.ContentType == "" {
		return "unsupported file type: expected application/pdf"
	}
	return fmt.Sprintf("unsupported file type %q: expected application/pdf", e.ContentType)
}

// ExtractionError represents a failure to read text out of a PDF
type ExtractionError struct {
	Filename string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("failed to extract text from %s: %v", e.Filename, e.Cause)
	}
	return fmt.Sprintf("failed to extract text: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// TooLargeError is returned when a resume is larger than the upload limit
type TooLargeError struct {
	Filename string
	Limit    int64
}

func (e *TooLargeError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s exceeds the %d byte upload limit", e.Filename, e.Limit)
	}
	return fmt.Sprintf("file exceeds the %d byte upload limit", e.Limit)
}
