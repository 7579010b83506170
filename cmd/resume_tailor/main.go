// Package main provides the entry point for the resume tailor server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_tailor",
	Short: "AI suggestions for tailoring a resume to a job posting",
	Long: `Resume Tailor reads a PDF resume and a job description, summarizes the job with Gemini
and returns keyword and section suggestions for adapting the resume.

Run "serve" for the web UI, or use the subcommands directly from the terminal.`,
	SilenceUsage: true,
}

func init() {
	addConfigFlags(rootCmd)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
