package services

import (
	"fmt"

	"restaceratops/internal/logger"
	"restaceratops/pkg/resttypes"
)

// ClientFactoryService creates the remote completion client for the
// configured provider. Exactly one client is created per configuration;
// the provider choice is fixed for the process lifetime.
type ClientFactoryService struct {
	initialized bool
}

// NewClientFactoryService creates a new ClientFactoryService instance.
func NewClientFactoryService() *ClientFactoryService {
	return &ClientFactoryService{
		initialized: false,
	}
}

// Name returns the service name "client_factory" for registration.
func (f *ClientFactoryService) Name() string {
	return "client_factory"
}

// Initialize sets up the ClientFactoryService for operation.
func (f *ClientFactoryService) Initialize() error {
	logger.ServiceOperation("client_factory", "initialize", "starting")
	f.initialized = true
	logger.ServiceOperation("client_factory", "initialize", "completed")
	return nil
}

// ClientForConfig returns a completion client for the configured provider.
// An unknown provider is an error; a missing API key is not, since the
// returned client simply reports itself as unconfigured.
func (f *ClientFactoryService) ClientForConfig(config resttypes.RemoteConfig) (resttypes.CompletionClient, error) {
	if !f.initialized {
		return nil, fmt.Errorf("client factory service not initialized")
	}

	switch config.Provider {
	case "", "openrouter", "openai-compatible":
		logger.Debug("Creating OpenRouter client", "model", config.Model)
		return NewOpenRouterClient(config), nil
	case "anthropic":
		logger.Debug("Creating Anthropic client", "model", config.Model)
		return NewAnthropicClient(config), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}

// Interface compliance check
var _ resttypes.Service = (*ClientFactoryService)(nil)
