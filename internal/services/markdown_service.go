package services

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"restaceratops/internal/logger"
	"restaceratops/pkg/resttypes"
)

// MarkdownService provides markdown rendering for terminal output using
// Glamour. Guidance documents and remote answers are markdown; the CLI
// renders them through this service before display.
type MarkdownService struct {
	initialized bool
	renderer    *glamour.TermRenderer
}

// NewMarkdownService creates a new MarkdownService instance.
func NewMarkdownService() *MarkdownService {
	return &MarkdownService{
		initialized: false,
		renderer:    nil,
	}
}

// Name returns the service name "markdown" for registration.
func (m *MarkdownService) Name() string {
	return "markdown"
}

// Initialize sets up the MarkdownService with default configuration.
func (m *MarkdownService) Initialize() error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	m.renderer = renderer
	m.initialized = true

	logger.Debug("MarkdownService initialized successfully")
	return nil
}

// Render renders markdown content to ANSI terminal output.
// It returns the rendered content as a string with ANSI escape sequences.
func (m *MarkdownService) Render(markdown string) (string, error) {
	if !m.initialized {
		return "", fmt.Errorf("markdown service not initialized")
	}

	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("markdown content cannot be empty")
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return rendered, nil
}

// RenderOrPlain renders markdown and falls back to the raw text when
// rendering fails. Display output must never be lost to a renderer error.
func (m *MarkdownService) RenderOrPlain(markdown string) string {
	rendered, err := m.Render(markdown)
	if err != nil {
		logger.Debug("Markdown rendering failed, using plain text", "error", err)
		return markdown
	}
	return rendered
}

// Interface compliance check
var _ resttypes.Service = (*MarkdownService)(nil)
