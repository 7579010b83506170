package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseText_JoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{
						genai.Text("Type: keyword\n"),
						genai.Text("Message: Add Go"),
					},
				},
			},
		},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Type: keyword\nMessage: Add Go", text)
}

func TestResponseText_NoCandidates(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestResponseText_NilResponse(t *testing.T) {
	_, err := responseText(nil)
	assert.Error(t, err)
}

func TestResponseText_NoContent(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil}},
	}

	_, err := responseText(resp)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestResponseText_NoTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Blob{MIMEType: "image/png", Data: []byte{1}}},
				},
			},
		},
	}

	_, err := responseText(resp)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no text parts")
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
	assert.Nil(t, client)
}

func TestNewClient_MissingAPIKeyIsUntypedNil(t *testing.T) {
	client, err := NewClient(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
	assert.True(t, client == nil, "interface must be nil, not a typed nil")
}

func TestGenerateError(t *testing.T) {
	blocked := &genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}
	err := generateError("gemini-1.5-flash", blocked)
	assert.Contains(t, err.Error(), "gemini-1.5-flash blocked the request")
	var target *genai.BlockedError
	assert.ErrorAs(t, err, &target)

	cause := errors.New("googleapi: Error 429: quota exceeded")
	err = generateError("gemini-1.5-flash", cause)
	assert.Equal(t, "gemini-1.5-flash request failed: googleapi: Error 429: quota exceeded", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	client, err := NewClient(context.Background(), &Config{Provider: "unknown"}, "key")
	assert.Error(t, err)
	assert.Nil(t, client)
}
