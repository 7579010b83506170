package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
}

func (m *mockClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.tiers = append(m.tiers, tier)
	return m.response, m.err
}

func (m *mockClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *mockClient) Close() error { return nil }

type mockFetcher struct {
	text string
	err  error
	urls []string
}

func (f *mockFetcher) FetchText(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.text, f.err
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt("Senior Go engineer, payments team.")
	require.NoError(t, err)

	assert.Contains(t, prompt, "Senior Go engineer, payments team.")
	assert.Contains(t, prompt, "key responsibilities, required skills, and overall purpose")
	assert.Contains(t, prompt, "under 200 words")
}

func TestSummarize_Success(t *testing.T) {
	client := &mockClient{response: "A backend role on the payments team."}

	job, err := Summarize(context.Background(), client, "  We need a Go engineer for payments.  ")
	require.NoError(t, err)

	assert.Equal(t, types.JobDescriptionTitle, job.Title)
	assert.Equal(t, "A backend role on the payments team.", job.Description)
	require.Len(t, client.prompts, 1)
	assert.Equal(t, llm.TierLite, client.tiers[0])
	assert.Contains(t, client.prompts[0], "We need a Go engineer for payments.")
}

func TestSummarize_DescriptionIsModelOutput(t *testing.T) {
	raw := "RAW POSTING TEXT"
	client := &mockClient{response: "```\nSummary only.\n```"}

	job, err := Summarize(context.Background(), client, raw)
	require.NoError(t, err)
	assert.Equal(t, "Summary only.", job.Description)
	assert.NotContains(t, job.Description, raw)
}

func TestSummarize_EmptyInput(t *testing.T) {
	client := &mockClient{}

	job, err := Summarize(context.Background(), client, " \n\t ")
	assert.Nil(t, job)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, client.prompts)
}

func TestSummarize_APIFailure(t *testing.T) {
	client := &mockClient{err: errors.New("503 backend unavailable")}

	job, err := Summarize(context.Background(), client, "Go engineer")
	assert.Nil(t, job)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "503 backend unavailable")
}

func TestSummarizeURL(t *testing.T) {
	client := &mockClient{response: "Summarized."}
	fetcher := &mockFetcher{text: "Job page text"}

	job, err := SummarizeURL(context.Background(), client, fetcher, "https://jobs.example.com/1")
	require.NoError(t, err)

	assert.Equal(t, "Summarized.", job.Description)
	assert.Equal(t, []string{"https://jobs.example.com/1"}, fetcher.urls)
	assert.Contains(t, client.prompts[0], "Job page text")
}

func TestSummarizeURL_FetchFailure(t *testing.T) {
	client := &mockClient{}
	fetcher := &mockFetcher{err: errors.New("connection refused")}

	_, err := SummarizeURL(context.Background(), client, fetcher, "https://jobs.example.com/1")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "https://jobs.example.com/1", fetchErr.URL)
	assert.Empty(t, client.prompts)
}

func TestSummarizeURL_EmptyPage(t *testing.T) {
	_, err := SummarizeURL(context.Background(), &mockClient{}, &mockFetcher{text: "  "}, "https://jobs.example.com/1")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
