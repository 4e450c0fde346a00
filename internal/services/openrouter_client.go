// Package services provides the remote completion clients and core services
// for the Restaceratops conversational assistant.
package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"restaceratops/internal/logger"
	"restaceratops/pkg/resttypes"
)

// OpenRouterClient implements the CompletionClient interface against any
// OpenAI-compatible chat-completions endpoint, defaulting to OpenRouter.
// It provides lazy initialization of the underlying client and performs one
// best-effort request per call: no retry, no backoff.
type OpenRouterClient struct {
	config resttypes.RemoteConfig
	client *openai.Client
}

// NewOpenRouterClient creates a new OpenRouter client with lazy initialization.
// The underlying API client is created only when the first request is made.
func NewOpenRouterClient(config resttypes.RemoteConfig) *OpenRouterClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://openrouter.ai/api/v1"
	}
	return &OpenRouterClient{
		config: config,
		client: nil, // Will be initialized lazily
	}
}

// ProviderName returns the provider name for this client.
func (c *OpenRouterClient) ProviderName() string {
	if c.config.Provider != "" {
		return c.config.Provider
	}
	return "openrouter"
}

// IsConfigured returns true if the client has an API key.
func (c *OpenRouterClient) IsConfigured() bool {
	return c.config.Configured()
}

// initializeClientIfNeeded initializes the API client if it hasn't been initialized yet.
func (c *OpenRouterClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil // Already initialized
	}

	if !c.IsConfigured() {
		return resttypes.ErrNotConfigured
	}

	options := []option.RequestOption{
		option.WithAPIKey(c.config.APIKey),
		option.WithBaseURL(c.config.BaseURL),
		// Single best-effort attempt per call: the fallback catalog is the
		// retry strategy.
		option.WithMaxRetries(0),
	}
	// Routing and attribution headers required by the provider
	for key, value := range c.config.Headers {
		options = append(options, option.WithHeader(key, value))
	}

	client := openai.NewClient(options...)
	c.client = &client

	logger.Debug("OpenRouter client initialized", "provider", c.ProviderName(), "baseURL", c.config.BaseURL)
	return nil
}

// Generate sends one chat completion request carrying the full message
// sequence and returns the first choice's completion text. The caller owns
// the fallback decision: every failure kind surfaces as an error here.
func (c *OpenRouterClient) Generate(ctx context.Context, messages []resttypes.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty")
	}

	// Fast, side-effect-free guard: absence of a key is not a failure and
	// must not trigger network I/O.
	if !c.IsConfigured() {
		return "", resttypes.ErrNotConfigured
	}

	if err := c.initializeClientIfNeeded(); err != nil {
		return "", fmt.Errorf("failed to initialize OpenRouter client: %w", err)
	}

	logger.RemoteCall(c.ProviderName(), c.config.Model, len(messages))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.config.Model),
		Messages:    convertMessagesToOpenAI(messages),
		Temperature: openai.Float(c.config.Temperature),
		MaxTokens:   openai.Int(int64(c.config.MaxTokens)),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("OpenRouter request failed", "error", err)
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		logger.Error("No response choices returned")
		return "", fmt.Errorf("no response choices returned")
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		logger.Error("Empty response content")
		return "", fmt.Errorf("empty response content")
	}

	logger.Debug("OpenRouter response received", "content_length", len(content))
	return content, nil
}

// convertMessagesToOpenAI converts conversation messages to the OpenAI
// chat-completion parameter format, preserving order. Unknown roles are skipped.
func convertMessagesToOpenAI(messages []resttypes.Message) []openai.ChatCompletionMessageParamUnion {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case resttypes.RoleSystem:
			converted = append(converted, openai.SystemMessage(msg.Content))
		case resttypes.RoleUser:
			converted = append(converted, openai.UserMessage(msg.Content))
		case resttypes.RoleAssistant:
			converted = append(converted, openai.AssistantMessage(msg.Content))
		default:
			continue
		}
	}

	return converted
}
