package resttypes

import "context"

// Service defines the interface implemented by all Restaceratops services.
// Services are constructed explicitly and initialized once before use.
type Service interface {
	Name() string
	Initialize() error
}

// CompletionClient is the contract for a remote chat-completion backend.
// Generate performs at most one outbound request per invocation and returns
// the completion text of the first choice. Implementations must return
// ErrNotConfigured without any network I/O when no API key is present.
type CompletionClient interface {
	ProviderName() string
	IsConfigured() bool
	Generate(ctx context.Context, messages []Message) (string, error)
}
