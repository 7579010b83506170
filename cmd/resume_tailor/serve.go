package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API",
	Long:  `Start an HTTP server that serves the upload page and the endpoints for summarizing a job and analyzing a resume.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", config.DefaultPort, "Port to listen on (defaults to PORT env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}

	ttl, err := cfg.SessionIdleTTL()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		Model:          cfg.Model,
		MaxUploadBytes: cfg.MaxUploadBytes,
		SessionTTL:     ttl,
		UseBrowser:     cfg.UseBrowser,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
