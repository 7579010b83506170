package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/summarize"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/spf13/cobra"
)

var summarizeJobCmd = &cobra.Command{
	Use:   "summarize-job",
	Short: "Summarize a job posting from a text file or URL",
	Long:  "Send a job description to Gemini and print the concise summary that suggestions are generated from.",
	RunE:  runSummarizeJob,
}

var (
	summarizeJobPath string
	summarizeJobURL  string
	summarizeJSON    bool
)

func init() {
	summarizeJobCmd.Flags().StringVarP(&summarizeJobPath, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	summarizeJobCmd.Flags().StringVar(&summarizeJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	summarizeJobCmd.Flags().BoolVar(&summarizeJSON, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(summarizeJobCmd)
}

func runSummarizeJob(cmd *cobra.Command, _ []string) error {
	if err := validateJobSource(summarizeJobPath, summarizeJobURL); err != nil {
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

	job, err := summarizeJob(ctx, client, cfg, summarizeJobPath, summarizeJobURL)
	if err != nil {
		return err
	}

	if summarizeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(job)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintJobSummary(job)
	return nil
}

// summarizeJob summarizes the job at jobURL, or the text file at jobPath.
func summarizeJob(ctx context.Context, client llm.Client, cfg config.Config, jobPath, jobURL string) (*types.JobPostingData, error) {
	if jobURL != "" {
		return summarize.SummarizeURL(ctx, client, newFetcher(cfg), jobURL)
	}

	text, err := readJobFile(jobPath)
	if err != nil {
		return nil, err
	}
	return summarize.Summarize(ctx, client, text)
}
