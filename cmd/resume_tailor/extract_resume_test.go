package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureResume = filepath.Join("..", "..", "internal", "ingestion", "testdata", "resume.pdf")

func TestIngestResume_Fixture(t *testing.T) {
	result, err := ingestResume(context.Background(), config.Config{}, fixtureResume)
	require.NoError(t, err)

	assert.Contains(t, result.Resume.Text, "Jane Doe")
	assert.Equal(t, "resume.pdf", result.Metadata.Filename)
}

func TestIngestResume_RejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe"), 0o644))

	_, err := ingestResume(context.Background(), config.Config{}, path)
	require.Error(t, err)

	var unsupported *ingestion.UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestWriteResumeOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	result := &ingestion.Result{
		Resume:   &types.ResumeData{Text: "Jane Doe"},
		Metadata: ingestion.NewMetadata("resume.pdf", "Jane Doe", 1),
	}

	require.NoError(t, writeResumeOutput(dir, result))

	text, err := os.ReadFile(filepath.Join(dir, "resume.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", string(text))

	raw, err := os.ReadFile(filepath.Join(dir, "resume.meta.json"))
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "resume.pdf", meta["filename"])
}

func TestExtractResumeCommand(t *testing.T) {
	outDir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"extract-resume", "--resume", fixtureResume, "--out", outDir})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		extractOutDir = ""
		extractResumePath = ""
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "RESUME TEXT (PREVIEW)")
	assert.Contains(t, out.String(), "Jane Doe")
	assert.FileExists(t, filepath.Join(outDir, "resume.txt"))
	assert.FileExists(t, filepath.Join(outDir, "resume.meta.json"))
}
