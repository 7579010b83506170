package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrAPIKeyRequired is returned when a client is created without a key.
var ErrAPIKeyRequired = errors.New("API key is required")

// Client sends a single prompt to a generative model and returns its text reply.
type Client interface {
	// GenerateContent sends prompt to the model configured for tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the model name used for tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient returns the client for config.Provider, or the default Gemini setup
// when config is nil.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Provider != ProviderGemini {
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}

	gemini, err := NewGeminiClient(ctx, config, apiKey)
	if err != nil {
		return nil, err
	}
	return gemini, nil
}

// GeminiClient is a Client backed by the Gemini API. Models are created once
// per model name and reused across requests.
type GeminiClient struct {
	client *genai.Client
	config *Config

	mu     sync.Mutex
	models map[string]*genai.GenerativeModel
}

// NewGeminiClient connects to Gemini with apiKey.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
		models: make(map[string]*genai.GenerativeModel),
	}, nil
}

// GenerateContent sends prompt as a single text turn and returns the joined
// text of the first candidate.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	resp, err := c.model(name).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", generateError(name, err)
	}
	return responseText(resp)
}

// model returns the cached model handle for name.
func (c *GeminiClient) model(name string) *genai.GenerativeModel {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.models[name]; ok {
		return m
	}
	m := c.client.GenerativeModel(name)
	if c.config.Temperature > 0 {
		m.SetTemperature(c.config.Temperature)
	}
	c.models[name] = m
	return m
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// generateError names the model in a failed request. Safety blocks get their
// own wording since retrying the same prompt will not help.
func generateError(model string, err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%s blocked the request: %w", model, err)
	}
	return fmt.Errorf("%s request failed: %w", model, err)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", errors.New("no content in response")
	}

	var b strings.Builder
	found := false
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
			found = true
		}
	}
	if !found {
		return "", errors.New("no text parts in response")
	}
	return b.String(), nil
}
