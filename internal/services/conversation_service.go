package services

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"restaceratops/internal/logger"
	"restaceratops/internal/testutils"
	"restaceratops/pkg/resttypes"
)

// conversationSystemPrompt fixes the assistant's role for every remote call.
// It is replayed on each request and never stored in the history.
const conversationSystemPrompt = `You are Restaceratops, an advanced AI-powered API testing assistant. Your core purpose is to provide expert-level guidance for API testing and development.

## Your Capabilities:
1. **API Testing Strategy**: Design comprehensive testing strategies for REST APIs, GraphQL, and microservices
2. **Test Case Generation**: Create detailed test cases including positive, negative, edge cases, and performance tests
3. **Code Generation**: Generate YAML test specifications, test scripts, and automation code
4. **Debugging & Analysis**: Analyze API responses, error codes, and provide troubleshooting guidance
5. **Performance Testing**: Guide users on load testing, stress testing, and performance optimization
6. **Security Testing**: Provide guidance on authentication, authorization, and security testing
7. **Best Practices**: Share industry best practices for API testing and quality assurance

## Your Response Style:
- Be professional yet approachable
- Provide actionable, practical advice
- Include code examples when relevant
- Use markdown formatting for clarity
- Focus specifically on API testing context
- Ask clarifying questions when needed

Remember: You're helping users build robust, reliable APIs through comprehensive testing.`

// resetConfirmation is returned by every Reset call, successful or repeated.
const resetConfirmation = "✅ Conversation reset successfully"

// DefaultHistoryLimit bounds the stored conversation history. Oldest messages
// are dropped first once the limit is exceeded, capping the payload replayed
// to the remote service.
const DefaultHistoryLimit = 10

// ConversationService owns one conversation and drives the
// remote-call-or-fallback decision for every turn. Instances are constructed
// explicitly and owned by the caller: one service per session. Turns are
// serialized with a mutex, so concurrent calls against the same instance
// cannot corrupt or reorder the history.
type ConversationService struct {
	initialized  bool
	mu           sync.Mutex
	history      []resttypes.Message
	client       resttypes.CompletionClient
	classifier   *IntentService
	catalog      *GuidanceCatalogService
	config       resttypes.RemoteConfig
	historyLimit int
	logger       *log.Logger
}

// ConversationOption configures a ConversationService at construction.
type ConversationOption func(*ConversationService)

// WithHistoryLimit overrides the default bound on stored history length.
// Values below 2 are ignored: a turn needs room for one user and one
// assistant message.
func WithHistoryLimit(limit int) ConversationOption {
	return func(s *ConversationService) {
		if limit >= 2 {
			s.historyLimit = limit
		}
	}
}

// NewConversationService creates a conversation service around the given
// completion client, classifier, and guidance catalog. A nil client is valid
// and puts the service permanently in fallback-only mode.
func NewConversationService(client resttypes.CompletionClient, classifier *IntentService, catalog *GuidanceCatalogService, config resttypes.RemoteConfig, opts ...ConversationOption) *ConversationService {
	s := &ConversationService{
		client:       client,
		classifier:   classifier,
		catalog:      catalog,
		config:       config,
		historyLimit: DefaultHistoryLimit,
		logger:       logger.NewStyledLogger("ConversationService"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the service name "conversation" for registration.
func (s *ConversationService) Name() string {
	return "conversation"
}

// Initialize verifies the collaborating services are present.
func (s *ConversationService) Initialize() error {
	if s.classifier == nil || s.catalog == nil {
		return errors.New("conversation service requires a classifier and a guidance catalog")
	}
	s.initialized = true
	return nil
}

// HandleTurn processes one user turn. It appends the user message, attempts
// the remote completion with the replayed history, and on success appends the
// assistant reply. On any failure or when the remote is unconfigured, it
// returns the matching guidance document WITHOUT recording it: fallback text
// never becomes conversational context for later remote calls. HandleTurn
// always returns a displayable result and never panics across its boundary.
func (s *ConversationService) HandleTurn(ctx context.Context, input string) (result resttypes.TurnResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Anything unexpected inside a turn degrades to the fallback path
	// instead of crossing the public boundary.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Turn processing fault", "panic", r)
			result = s.fallbackResult(input, resttypes.DegradeRemoteFailure)
		}
	}()

	s.appendMessage(resttypes.RoleUser, input)

	if s.client == nil || !s.client.IsConfigured() {
		s.logger.Debug("Remote client unavailable, using guidance catalog")
		return s.fallbackResult(input, resttypes.DegradeNotConfigured)
	}

	reply, err := s.client.Generate(ctx, s.replayMessages())
	if err != nil {
		if errors.Is(err, resttypes.ErrNotConfigured) {
			return s.fallbackResult(input, resttypes.DegradeNotConfigured)
		}
		s.logger.Warn("Remote completion failed, using guidance catalog", "error", err)
		return s.fallbackResult(input, resttypes.DegradeRemoteFailure)
	}

	s.appendMessage(resttypes.RoleAssistant, reply)

	return resttypes.TurnResult{
		Text:   reply,
		Source: resttypes.SourceRemote,
	}
}

// Reset empties the conversation history unconditionally and returns a fixed
// acknowledgement. It is idempotent and never fails.
func (s *ConversationService) Reset() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
	s.logger.Debug("Conversation history cleared")
	return resetConfirmation
}

// Stats returns a read-only snapshot of the service state.
func (s *ConversationService) Stats() resttypes.SystemStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := resttypes.SystemStats{
		Provider:      s.config.Provider,
		Model:         s.config.Model,
		HistoryLength: len(s.history),
	}
	if s.client != nil {
		stats.Provider = s.client.ProviderName()
		stats.Configured = s.client.IsConfigured()
	}
	return stats
}

// History returns a copy of the stored conversation history.
func (s *ConversationService) History() []resttypes.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]resttypes.Message, len(s.history))
	copy(out, s.history)
	return out
}

// appendMessage records a message and enforces the retention bound, dropping
// the oldest messages first. Callers must hold the mutex.
func (s *ConversationService) appendMessage(role, content string) {
	s.history = append(s.history, resttypes.Message{
		ID:        testutils.GenerateUUID(),
		Role:      role,
		Content:   content,
		Timestamp: testutils.GetCurrentTime(),
	})
	if len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
}

// replayMessages builds the message sequence sent to the remote service: the
// fixed system prompt followed by the stored history in insertion order.
// Callers must hold the mutex.
func (s *ConversationService) replayMessages() []resttypes.Message {
	messages := make([]resttypes.Message, 0, len(s.history)+1)
	messages = append(messages, resttypes.Message{
		Role:    resttypes.RoleSystem,
		Content: conversationSystemPrompt,
	})
	messages = append(messages, s.history...)
	return messages
}

// fallbackResult classifies the input and selects the guidance document for
// it. The document is returned without being appended to the history.
func (s *ConversationService) fallbackResult(input string, reason resttypes.DegradeReason) resttypes.TurnResult {
	intent := s.classifier.Classify(input)
	s.logger.Debug("Fallback response selected", "intent", intent, "reason", reason)

	return resttypes.TurnResult{
		Text:   s.catalog.Lookup(intent),
		Source: resttypes.SourceFallback,
		Intent: intent,
		Reason: reason,
	}
}

// Interface compliance check
var _ resttypes.Service = (*ConversationService)(nil)
