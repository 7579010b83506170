// Package summarize shortens a job description with the generative-language API.
package summarize

import (
	"context"
	"strings"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Fetcher retrieves the readable text of a job posting page.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Summarize sends jobText to the model with the summary prompt. The returned
// description is the model output, never the raw input.
func Summarize(ctx context.Context, client llm.Client, jobText string) (*types.JobPostingData, error) {
	jobText = strings.TrimSpace(jobText)
	if jobText == "" {
		return nil, &ValidationError{Message: "job description is empty"}
	}

	prompt, err := BuildPrompt(jobText)
	if err != nil {
		return nil, err
	}

	text, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to summarize job description",
			Cause:   err,
		}
	}

	return &types.JobPostingData{
		Title:       types.JobDescriptionTitle,
		Description: llm.StripCodeFence(text),
	}, nil
}

// SummarizeURL fetches a job posting page and summarizes its text.
func SummarizeURL(ctx context.Context, client llm.Client, fetcher Fetcher, url string) (*types.JobPostingData, error) {
	text, err := fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Message: "job posting page has no readable text"}
	}
	return Summarize(ctx, client, text)
}

// BuildPrompt embeds the job description in the summary prompt template.
func BuildPrompt(jobText string) (string, error) {
	return prompts.Render("summarize.json", "job-summary", map[string]string{"JobText": jobText})
}
