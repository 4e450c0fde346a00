package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaceratops/pkg/resttypes"
)

func newTestSpecGen(t *testing.T, client resttypes.CompletionClient) *SpecGenService {
	t.Helper()
	s := NewSpecGenService(client)
	require.NoError(t, s.Initialize())
	return s
}

func TestNewSpecGenServiceCarriesComponentLogger(t *testing.T) {
	s := newTestSpecGen(t, nil)
	require.NotNil(t, s.logger)
	assert.Equal(t, "SpecGenService ", s.logger.GetPrefix())
}

func TestGenerateTestSpecFallbackContainsDescription(t *testing.T) {
	s := newTestSpecGen(t, nil)

	result := s.GenerateTestSpec(context.Background(), "GET /users returns list", "must cover auth")

	assert.True(t, result.Source == resttypes.SourceFallback)
	assert.Equal(t, resttypes.DegradeNotConfigured, result.Reason)
	assert.Contains(t, result.Document, "API Test Template")

	// The description is interpolated at the tail of the template.
	tail := result.Document[len(result.Document)-200:]
	assert.Contains(t, tail, "GET /users returns list")
}

func TestGenerateTestSpecFallbackTruncatesLongDescription(t *testing.T) {
	s := newTestSpecGen(t, nil)

	description := strings.Repeat("a", 480) + "MARKER" + strings.Repeat("b", 200)
	result := s.GenerateTestSpec(context.Background(), description, "")

	// Only the first 500 characters are interpolated.
	assert.Contains(t, result.Document, "MARKER")
	assert.NotContains(t, result.Document, "bbbbbbbbbb")
	assert.Contains(t, result.Document, description[:500])
}

func TestGenerateTestSpecFallbackTruncationIsRuneAware(t *testing.T) {
	s := newTestSpecGen(t, nil)

	// A multibyte rune straddling the character limit must be dropped whole,
	// never split into invalid bytes.
	description := strings.Repeat("a", 499) + "é" + strings.Repeat("b", 100)
	result := s.GenerateTestSpec(context.Background(), description, "")

	assert.True(t, utf8.ValidString(result.Document))
	assert.Contains(t, result.Document, strings.Repeat("a", 499)+"é")
	assert.NotContains(t, result.Document, "éb")

	// Multibyte-heavy input truncates by character count, not byte count.
	wide := strings.Repeat("日", 600)
	result = s.GenerateTestSpec(context.Background(), wide, "")
	assert.True(t, utf8.ValidString(result.Document))
	assert.Contains(t, result.Document, strings.Repeat("日", 500))
	assert.NotContains(t, result.Document, strings.Repeat("日", 501))
}

func TestGenerateTestSpecShortDescriptionUsedWhole(t *testing.T) {
	s := newTestSpecGen(t, nil)

	result := s.GenerateTestSpec(context.Background(), "tiny", "")
	assert.Contains(t, result.Document, "tiny")
}

func TestGenerateTestSpecRemoteSuccessUnmodified(t *testing.T) {
	client := &mockCompletionClient{configured: true, reply: "generated: test suite"}
	s := newTestSpecGen(t, client)

	result := s.GenerateTestSpec(context.Background(), "POST /orders", "idempotency")

	assert.True(t, result.Source == resttypes.SourceRemote)
	assert.Equal(t, "generated: test suite", result.Document)
}

func TestGenerateTestSpecBuildsTwoMessages(t *testing.T) {
	client := &mockCompletionClient{configured: true, reply: "spec"}
	s := newTestSpecGen(t, client)

	s.GenerateTestSpec(context.Background(), "GET /things", "cover errors")

	require.Len(t, client.calls, 1)
	messages := client.calls[0]
	require.Len(t, messages, 2)

	assert.Equal(t, resttypes.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "expert API testing specialist")

	assert.Equal(t, resttypes.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "GET /things")
	assert.Contains(t, messages[1].Content, "cover errors")
	assert.Contains(t, messages[1].Content, "all endpoints")
}

func TestGenerateTestSpecRemoteFailureFallsBack(t *testing.T) {
	client := &mockCompletionClient{configured: true, err: errors.New("remote down")}
	s := newTestSpecGen(t, client)

	result := s.GenerateTestSpec(context.Background(), "DELETE /sessions", "")

	assert.True(t, result.Source == resttypes.SourceFallback)
	assert.Equal(t, resttypes.DegradeRemoteFailure, result.Reason)
	assert.Contains(t, result.Document, "DELETE /sessions")
}

func TestGenerateTestSpecIndependentOfConversation(t *testing.T) {
	client := &mockCompletionClient{configured: true, reply: "answer"}
	conversation := newTestConversation(t, client)
	specgen := newTestSpecGen(t, client)

	conversation.HandleTurn(context.Background(), "remember this context")
	before := conversation.Stats().HistoryLength

	specgen.GenerateTestSpec(context.Background(), "GET /ping", "")

	// Spec generation never touches conversation history and never replays it.
	assert.Equal(t, before, conversation.Stats().HistoryLength)
	last := client.calls[len(client.calls)-1]
	assert.Len(t, last, 2)
}
