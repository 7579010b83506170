package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/spf13/cobra"
)

var extractResumeCmd = &cobra.Command{
	Use:   "extract-resume",
	Short: "Extract the text of a PDF resume",
	Long:  "Extract and clean the text of a PDF resume, print a preview, and optionally write the text and metadata to a directory.",
	RunE:  runExtractResume,
}

var (
	extractResumePath string
	extractOutDir     string
)

func init() {
	extractResumeCmd.Flags().StringVarP(&extractResumePath, "resume", "r", "", "Path to PDF resume (required)")
	extractResumeCmd.Flags().StringVarP(&extractOutDir, "out", "o", "", "Output directory for resume.txt and resume.meta.json")

	extractResumeCmd.MarkFlagRequired("resume") //nolint:errcheck

	rootCmd.AddCommand(extractResumeCmd)
}

func runExtractResume(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}

	result, err := ingestResume(context.Background(), cfg, extractResumePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintResumePreview(result.Resume)
	_, _ = fmt.Fprintf(out, "Extracted %d characters from %d page(s)\n", result.Metadata.Characters, result.Metadata.Pages)

	if extractOutDir == "" {
		return nil
	}
	if err := writeResumeOutput(extractOutDir, result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Text: %s\n", filepath.Join(extractOutDir, "resume.txt"))
	_, _ = fmt.Fprintf(out, "Metadata: %s\n", filepath.Join(extractOutDir, "resume.meta.json"))
	return nil
}

// ingestResume reads and extracts the PDF at path.
func ingestResume(ctx context.Context, cfg config.Config, path string) (*ingestion.Result, error) {
	result, err := ingestion.IngestFile(ctx, path, cfg.MaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest resume: %w", err)
	}
	return result, nil
}

// writeResumeOutput writes the cleaned text and its metadata to dir.
func writeResumeOutput(dir string, result *ingestion.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "resume.txt"), []byte(result.Resume.Text), 0o644); err != nil {
		return fmt.Errorf("failed to write resume text: %w", err)
	}

	meta, err := result.Metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "resume.meta.json"), meta, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}
