package services

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"restaceratops/internal/logger"
	"restaceratops/pkg/resttypes"
)

// AnthropicClient implements the CompletionClient interface for Anthropic's
// native Messages API. It is selected by the client factory when the
// configured provider is "anthropic".
type AnthropicClient struct {
	config resttypes.RemoteConfig
	client *anthropic.Client
}

// NewAnthropicClient creates a new Anthropic client with lazy initialization.
// The actual Anthropic client is created only when the first request is made.
func NewAnthropicClient(config resttypes.RemoteConfig) *AnthropicClient {
	return &AnthropicClient{
		config: config,
		client: nil, // Will be initialized lazily
	}
}

// ProviderName returns the provider name for this client.
func (c *AnthropicClient) ProviderName() string {
	return "anthropic"
}

// IsConfigured returns true if the client has an API key.
func (c *AnthropicClient) IsConfigured() bool {
	return c.config.Configured()
}

// initializeClientIfNeeded initializes the Anthropic client if it hasn't been initialized yet.
func (c *AnthropicClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil // Already initialized
	}

	if !c.IsConfigured() {
		return resttypes.ErrNotConfigured
	}

	client := anthropic.NewClient(option.WithAPIKey(c.config.APIKey))
	c.client = &client

	logger.Debug("Anthropic client initialized", "provider", "anthropic")
	return nil
}

// Generate sends one message request to Anthropic and returns the
// concatenated text content of the reply.
func (c *AnthropicClient) Generate(ctx context.Context, messages []resttypes.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty")
	}

	if !c.IsConfigured() {
		return "", resttypes.ErrNotConfigured
	}

	if err := c.initializeClientIfNeeded(); err != nil {
		return "", fmt.Errorf("failed to initialize Anthropic client: %w", err)
	}

	logger.RemoteCall("anthropic", c.config.Model, len(messages))

	// Anthropic carries the system prompt outside the message list
	converted, systemPrompt := convertMessagesToAnthropic(messages)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages:  converted,
	}
	if c.config.Temperature > 0 {
		params.Temperature = anthropic.Float(c.config.Temperature)
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		logger.Error("Anthropic request failed", "error", err)
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if len(message.Content) == 0 {
		logger.Error("No response content returned")
		return "", fmt.Errorf("no response content returned")
	}

	// Concatenate all text blocks
	var content string
	for _, block := range message.Content {
		content += block.Text
	}

	if content == "" {
		logger.Error("Empty response content")
		return "", fmt.Errorf("empty response content")
	}

	logger.Debug("Anthropic response received", "content_length", len(content))
	return content, nil
}

// convertMessagesToAnthropic converts conversation messages to Anthropic's
// message format. System messages are collected into a single system prompt
// since the Messages API does not accept a system role inline.
func convertMessagesToAnthropic(messages []resttypes.Message) ([]anthropic.MessageParam, string) {
	converted := make([]anthropic.MessageParam, 0, len(messages))
	var systemPrompt string

	for _, msg := range messages {
		switch msg.Role {
		case resttypes.RoleSystem:
			if systemPrompt != "" {
				systemPrompt += "\n\n"
			}
			systemPrompt += msg.Content
		case resttypes.RoleUser:
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case resttypes.RoleAssistant:
			converted = append(converted, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			continue
		}
	}

	return converted, systemPrompt
}
