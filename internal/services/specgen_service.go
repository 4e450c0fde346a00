package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"restaceratops/internal/data/embedded"
	"restaceratops/internal/logger"
	"restaceratops/pkg/resttypes"
)

// specgenSystemPrompt fixes the assistant's role for test-spec generation.
const specgenSystemPrompt = `You are an expert API testing specialist. Your task is to generate comprehensive, production-ready test cases for REST APIs, responding in a structured test-specification format.

## Test Generation Guidelines:
1. **Coverage**: Include positive, negative, edge cases, and error scenarios
2. **Format**: Generate valid YAML test specifications
3. **Realism**: Use realistic test data and scenarios
4. **Best Practices**: Follow API testing best practices
5. **Documentation**: Include clear descriptions for each test`

// specDescriptionLimit caps how many characters of the API description are
// interpolated into the fallback template.
const specDescriptionLimit = 500

// SpecGenService generates test-specification documents from a free-text API
// description. It follows the same remote-call-then-template-fallback pattern
// as the conversation service but is stateless: every request builds exactly
// two messages and never touches conversation history.
type SpecGenService struct {
	initialized bool
	client      resttypes.CompletionClient
	logger      *log.Logger
}

// NewSpecGenService creates a spec generation service around the given
// completion client. A nil client is valid and always yields the template.
func NewSpecGenService(client resttypes.CompletionClient) *SpecGenService {
	return &SpecGenService{
		client: client,
		logger: logger.NewStyledLogger("SpecGenService"),
	}
}

// Name returns the service name "specgen" for registration.
func (s *SpecGenService) Name() string {
	return "specgen"
}

// Initialize sets up the SpecGenService for operation.
func (s *SpecGenService) Initialize() error {
	s.initialized = true
	return nil
}

// GenerateTestSpec builds the generation prompt and attempts the remote
// completion. On success the remote text is returned unmodified; on skip or
// failure the embedded template is returned with the leading portion of the
// API description interpolated at its tail. Never fails.
func (s *SpecGenService) GenerateTestSpec(ctx context.Context, apiDescription, requirements string) resttypes.SpecResult {
	if s.client == nil || !s.client.IsConfigured() {
		s.logger.Debug("Remote client unavailable, using spec template")
		return s.templateResult(apiDescription, resttypes.DegradeNotConfigured)
	}

	messages := []resttypes.Message{
		{Role: resttypes.RoleSystem, Content: specgenSystemPrompt},
		{Role: resttypes.RoleUser, Content: buildSpecPrompt(apiDescription, requirements)},
	}

	document, err := s.client.Generate(ctx, messages)
	if err != nil {
		if errors.Is(err, resttypes.ErrNotConfigured) {
			return s.templateResult(apiDescription, resttypes.DegradeNotConfigured)
		}
		s.logger.Warn("Remote spec generation failed, using template", "error", err)
		return s.templateResult(apiDescription, resttypes.DegradeRemoteFailure)
	}

	s.logger.Debug("Test specification generated remotely", "content_length", len(document))
	return resttypes.SpecResult{
		Document: document,
		Source:   resttypes.SourceRemote,
	}
}

// buildSpecPrompt embeds the API description and requirements verbatim along
// with the fixed coverage instruction.
func buildSpecPrompt(apiDescription, requirements string) string {
	var b strings.Builder

	b.WriteString("Generate comprehensive API test cases for the following specification:\n\n")
	fmt.Fprintf(&b, "**API Specification:**\n%s\n\n", apiDescription)
	fmt.Fprintf(&b, "**Requirements:**\n%s\n\n", requirements)
	b.WriteString(`**Expected Output:**
- Valid YAML test specification covering all endpoints
- Multiple test scenarios (positive, negative, edge cases)
- Authentication tests with clear assertions and expectations
- Error handling tests
- Performance considerations

Please provide a complete, ready-to-use test suite.`)

	return b.String()
}

// templateResult fills the embedded fallback template with the first portion
// of the API description. Descriptions shorter than the limit are used whole;
// truncation counts characters, not bytes, so multibyte runes are never split.
func (s *SpecGenService) templateResult(apiDescription string, reason resttypes.DegradeReason) resttypes.SpecResult {
	excerpt := apiDescription
	if utf8.RuneCountInString(excerpt) > specDescriptionLimit {
		runes := []rune(excerpt)
		excerpt = string(runes[:specDescriptionLimit])
	}

	document := string(embedded.SpecTemplateData) + excerpt + "\n"

	return resttypes.SpecResult{
		Document: document,
		Source:   resttypes.SourceFallback,
		Reason:   reason,
	}
}

// Interface compliance check
var _ resttypes.Service = (*SpecGenService)(nil)
