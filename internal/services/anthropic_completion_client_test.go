package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"restaceratops/pkg/resttypes"
)

func TestNewAnthropicClient(t *testing.T) {
	client := NewAnthropicClient(resttypes.RemoteConfig{APIKey: "test-key"})

	assert.Equal(t, "anthropic", client.ProviderName())
	assert.True(t, client.IsConfigured())
	assert.Nil(t, client.client) // lazy initialization
}

func TestAnthropicClientNotConfigured(t *testing.T) {
	client := NewAnthropicClient(resttypes.RemoteConfig{})
	assert.False(t, client.IsConfigured())

	_, err := client.Generate(context.Background(), []resttypes.Message{
		{Role: resttypes.RoleUser, Content: "hello"},
	})
	assert.ErrorIs(t, err, resttypes.ErrNotConfigured)
}

func TestAnthropicClientEmptyMessages(t *testing.T) {
	client := NewAnthropicClient(resttypes.RemoteConfig{APIKey: "key"})

	_, err := client.Generate(context.Background(), nil)
	assert.Error(t, err)
}

func TestConvertMessagesToAnthropic(t *testing.T) {
	messages := []resttypes.Message{
		{Role: resttypes.RoleSystem, Content: "be terse"},
		{Role: resttypes.RoleUser, Content: "question"},
		{Role: resttypes.RoleAssistant, Content: "answer"},
		{Role: "tool", Content: "skipped"},
		{Role: resttypes.RoleSystem, Content: "be kind"},
	}

	converted, systemPrompt := convertMessagesToAnthropic(messages)

	// System messages are hoisted out of the list and joined.
	assert.Len(t, converted, 2)
	assert.Equal(t, "be terse\n\nbe kind", systemPrompt)
}
