package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/spf13/cobra"
)

// addConfigFlags registers the flags shared by every subcommand.
func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.String("api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	flags.String("model", "", "Gemini model name (optional, defaults to "+llm.DefaultModel+")")
	flags.Bool("use-browser", false, "Use headless browser for job boards that render client-side (requires Chrome)")
	flags.BoolP("verbose", "v", false, "Print detailed debug information")
}

// resolveConfig builds the effective configuration. Precedence is flags, then
// the config file, then environment variables, then built-in defaults.
func resolveConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (config.Config, error) {
	flags := cmd.Flags()

	var cfg config.Config
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	if flags.Changed("api-key") {
		cfg.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser, _ = flags.GetBool("use-browser")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}

	env, err := config.FromEnv(lookupEnv)
	if err != nil {
		return config.Config{}, err
	}
	cfg = cfg.MergeWithDefaults(env)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLLMClient creates the Gemini client, failing when no API key is configured.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if !cfg.HasAPIKey() {
		return nil, fmt.Errorf("%s environment variable or --api-key flag is required", config.EnvAPIKey)
	}

	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithAllModels(cfg.Model)
	}
	return llm.NewClient(ctx, llmConfig, cfg.APIKey)
}

// newFetcher creates the job posting fetcher for cfg.
func newFetcher(cfg config.Config) *fetch.Fetcher {
	opts := fetch.DefaultOptions()
	opts.UseBrowser = cfg.UseBrowser
	return fetch.New(opts)
}

// validateJobSource checks that exactly one of a job file or URL was given.
func validateJobSource(jobPath, jobURL string) error {
	if jobPath == "" && jobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if jobPath != "" && jobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	return nil
}

// readJobFile reads a job description from a text file.
func readJobFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job file: %w", err)
	}
	return string(data), nil
}
