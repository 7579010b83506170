package ingestion

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/pdf", true},
		{"Application/PDF", true},
		{"application/pdf; charset=binary", true},
		{"text/plain", false},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", false},
		{"", false},
		{"not a media type;;", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPDF(tt.contentType))
		})
	}
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectContentType("resume.pdf", nil))
	assert.Equal(t, "application/pdf", DetectContentType("RESUME.PDF", nil))
	assert.Equal(t, "application/pdf", DetectContentType("resume", []byte("%PDF-1.4\n")))
	assert.False(t, IsPDF(DetectContentType("resume.txt", []byte("hello"))))
}

func TestIngestResume_Success(t *testing.T) {
	data := readFixture(t, "resume.pdf")

	result, err := IngestResume(context.Background(), Upload{
		Filename:    "resume.pdf",
		ContentType: PDFContentType,
		Body:        bytes.NewReader(data),
	}, 0)
	require.NoError(t, err)

	assert.Contains(t, result.Resume.Text, "Jane Doe")
	assert.Contains(t, result.Resume.Text, "Kubernetes")
	assert.Equal(t, "resume.pdf", result.Metadata.Filename)
	assert.Equal(t, 1, result.Metadata.Pages)
	assert.Len(t, result.Metadata.Hash, 64)
}

func TestIngestResume_RejectsNonPDF(t *testing.T) {
	body := &countingReader{r: strings.NewReader("plain text resume")}

	result, err := IngestResume(context.Background(), Upload{
		Filename:    "resume.txt",
		ContentType: "text/plain",
		Body:        body,
	}, 0)

	assert.Nil(t, result)
	var typeErr *UnsupportedTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "text/plain", typeErr.ContentType)
	assert.Zero(t, body.n, "body must not be read for rejected uploads")
}

func TestIngestResume_MalformedPDF(t *testing.T) {
	_, err := IngestResume(context.Background(), Upload{
		Filename:    "broken.pdf",
		ContentType: PDFContentType,
		Body:        strings.NewReader("%PDF-1.4\nthis is not really a pdf"),
	}, 0)

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "broken.pdf", extractErr.Filename)
}

func TestIngestResume_TooLarge(t *testing.T) {
	data := readFixture(t, "resume.pdf")

	_, err := IngestResume(context.Background(), Upload{
		Filename:    "resume.pdf",
		ContentType: PDFContentType,
		Body:        bytes.NewReader(data),
	}, 16)

	var tooLarge *TooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(16), tooLarge.Limit)
	assert.Equal(t, "resume.pdf exceeds the 16 byte upload limit", err.Error())

	var extractErr *ExtractionError
	assert.False(t, errors.As(err, &extractErr), "size rejection is not an extraction failure")
}

func TestIngestResume_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := IngestResume(ctx, Upload{
		Filename:    "resume.pdf",
		ContentType: PDFContentType,
		Body:        bytes.NewReader(readFixture(t, "resume.pdf")),
	}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIngestFile(t *testing.T) {
	result, err := IngestFile(context.Background(), filepath.Join("testdata", "resume.pdf"), 0)
	require.NoError(t, err)
	assert.Contains(t, result.Resume.Text, "Senior Go Engineer")
}

func TestIngestFile_NonPDF(t *testing.T) {
	_, err := IngestFile(context.Background(), filepath.Join("testdata", "resume.txt"), 0)

	var typeErr *UnsupportedTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestIngestFile_NotFound(t *testing.T) {
	_, err := IngestFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestMetadata_ToJSON(t *testing.T) {
	meta := NewMetadata("resume.pdf", "Jane Doe", 2)

	data, err := meta.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"filename": "resume.pdf"`)
	assert.Contains(t, string(data), `"pages": 2`)
	assert.Contains(t, string(data), `"characters": 8`)
}

type countingReader struct {
	r *strings.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
