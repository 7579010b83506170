// Package ingestion accepts resume uploads and turns them into plain text.
package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// PDFContentType is the only MIME type accepted for resumes.
const PDFContentType = "application/pdf"

// DefaultMaxUploadBytes bounds the size of a resume upload.
const DefaultMaxUploadBytes int64 = 10 << 20

// Upload is a user-selected resume file.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Result is the outcome of a successful ingestion.
type Result struct {
	Resume   *types.ResumeData
	Metadata *Metadata
}

// IsPDF reports whether contentType names a PDF document. Parameters such as
// charset are ignored.
func IsPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.EqualFold(mediaType, PDFContentType)
}

// DetectContentType guesses the MIME type of a local file from its extension,
// falling back to content sniffing.
func DetectContentType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}

// IngestResume validates the upload type, extracts the PDF text and cleans it.
// Non-PDF uploads return *UnsupportedTypeError before the body is read.
func IngestResume(ctx context.Context, upload Upload, maxBytes int64) (*Result, error) {
	if !IsPDF(upload.ContentType) {
		return nil, &UnsupportedTypeError{ContentType: upload.ContentType}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	data, err := io.ReadAll(io.LimitReader(upload.Body, maxBytes+1))
	if err != nil {
		return nil, &ExtractionError{Filename: upload.Filename, Cause: fmt.Errorf("failed to read upload: %w", err)}
	}
	if int64(len(data)) > maxBytes {
		return nil, &TooLargeError{Filename: upload.Filename, Limit: maxBytes}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extracted, err := ExtractPDFText(data)
	if err != nil {
		return nil, &ExtractionError{Filename: upload.Filename, Cause: err}
	}

	text := CleanText(extracted.Text)
	if text == "" {
		return nil, &ExtractionError{Filename: upload.Filename, Cause: ErrEmptyResume}
	}

	return &Result{
		Resume:   &types.ResumeData{Text: text},
		Metadata: NewMetadata(upload.Filename, text, extracted.Pages),
	}, nil
}

// IngestFile reads a resume from disk. The content type is detected from the
// file name and contents, so non-PDF files are rejected like uploads are.
func IngestFile(ctx context.Context, path string, maxBytes int64) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return IngestResume(ctx, Upload{
		Filename:    filepath.Base(path),
		ContentType: DetectContentType(path, data),
		Body:        bytes.NewReader(data),
	}, maxBytes)
}
