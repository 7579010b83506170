package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/suggestions"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Suggest how to tailor a resume to a job posting",
	Long: `Extracts the resume text and summarizes the job posting concurrently, then asks Gemini for
keyword and section suggestions.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeResumePath string
	analyzeJobPath    string
	analyzeJobURL     string
	analyzeJSON       bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumePath, "resume", "r", "", "Path to PDF resume (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobPath, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print suggestions as JSON")

	analyzeCmd.MarkFlagRequired("resume") //nolint:errcheck

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if err := validateJobSource(analyzeJobPath, analyzeJobURL); err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	// Resume extraction and job summarization are independent
	var (
		resume *ingestion.Result
		job    *types.JobPostingData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := ingestResume(gctx, cfg, analyzeResumePath)
		if err != nil {
			return err
		}
		resume = r
		return nil
	})
	g.Go(func() error {
		j, err := summarizeJob(gctx, client, cfg, analyzeJobPath, analyzeJobURL)
		if err != nil {
			return fmt.Errorf("failed to summarize job: %w", err)
		}
		job = j
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if cfg.Verbose {
		log.Printf("[analyze] resume %s: %d characters, job summary: %d characters",
			resume.Metadata.Filename, resume.Metadata.Characters, len(job.Description))
	}

	controller := session.NewController(func(ctx context.Context, r *types.ResumeData, j *types.JobPostingData) ([]types.Suggestion, error) {
		return suggestions.Extract(ctx, client, r, j)
	})
	controller.SetResume(resume.Resume)
	controller.SetJob(job)

	result, err := controller.Analyze(ctx)
	if err != nil {
		return fmt.Errorf("error generating suggestions: %w", err)
	}

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(types.AnalyzeResponse{Suggestions: result})
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintJobSummary(job)
	}
	printer.PrintSuggestions(result)
	return nil
}
