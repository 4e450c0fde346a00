package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaceratops/pkg/resttypes"
)

func testRemoteConfig(apiKey, baseURL string) resttypes.RemoteConfig {
	return resttypes.RemoteConfig{
		Provider:    "openrouter",
		BaseURL:     baseURL,
		Model:       "qwen/qwen3-coder:free",
		APIKey:      apiKey,
		Temperature: 0.7,
		MaxTokens:   1000,
		Headers: map[string]string{
			"HTTP-Referer": "https://restaceratops.dev",
		},
	}
}

func completionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "qwen/qwen3-coder:free",
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestNewOpenRouterClientDefaults(t *testing.T) {
	client := NewOpenRouterClient(resttypes.RemoteConfig{APIKey: "key"})

	assert.Equal(t, "openrouter", client.ProviderName())
	assert.Equal(t, "https://openrouter.ai/api/v1", client.config.BaseURL)
	assert.True(t, client.IsConfigured())
}

func TestOpenRouterClientNotConfigured(t *testing.T) {
	// No key: Generate must return ErrNotConfigured without any network I/O.
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOpenRouterClient(testRemoteConfig("", server.URL))
	assert.False(t, client.IsConfigured())

	_, err := client.Generate(context.Background(), []resttypes.Message{
		{Role: resttypes.RoleUser, Content: "hello"},
	})

	assert.ErrorIs(t, err, resttypes.ErrNotConfigured)
	assert.False(t, called)
}

func TestOpenRouterClientEmptyMessages(t *testing.T) {
	client := NewOpenRouterClient(testRemoteConfig("key", ""))

	_, err := client.Generate(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "messages cannot be empty")
}

func TestOpenRouterClientGenerateSuccess(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
	}
	var authHeader, refererHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		refererHeader = r.Header.Get("HTTP-Referer")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse("here is your answer"))
	}))
	defer server.Close()

	client := NewOpenRouterClient(testRemoteConfig("test-key", server.URL))

	reply, err := client.Generate(context.Background(), []resttypes.Message{
		{Role: resttypes.RoleSystem, Content: "you are a tester"},
		{Role: resttypes.RoleUser, Content: "test my api"},
	})

	require.NoError(t, err)
	assert.Equal(t, "here is your answer", reply)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "https://restaceratops.dev", refererHeader)
	assert.Equal(t, "qwen/qwen3-coder:free", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.InDelta(t, 0.7, captured.Temperature, 0.001)
	assert.Equal(t, 1000, captured.MaxTokens)
}

func TestOpenRouterClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "bad request"}}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient(testRemoteConfig("key", server.URL))

	_, err := client.Generate(context.Background(), []resttypes.Message{
		{Role: resttypes.RoleUser, Content: "hello"},
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, resttypes.ErrNotConfigured)
}

func TestOpenRouterClientEmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse(""))
	}))
	defer server.Close()

	client := NewOpenRouterClient(testRemoteConfig("key", server.URL))

	_, err := client.Generate(context.Background(), []resttypes.Message{
		{Role: resttypes.RoleUser, Content: "hello"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response content")
}

func TestOpenRouterClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient(testRemoteConfig("key", server.URL))

	_, err := client.Generate(context.Background(), []resttypes.Message{
		{Role: resttypes.RoleUser, Content: "hello"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response choices")
}

func TestConvertMessagesToOpenAISkipsUnknownRoles(t *testing.T) {
	converted := convertMessagesToOpenAI([]resttypes.Message{
		{Role: resttypes.RoleUser, Content: "a"},
		{Role: "tool", Content: "skip me"},
		{Role: resttypes.RoleAssistant, Content: "b"},
	})

	assert.Len(t, converted, 2)
}
