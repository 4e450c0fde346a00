// Package resttypes defines the shared domain types for Restaceratops.
// This file contains the conversation types: messages, turn results, and
// the snapshot structure exposed by the conversation service.
package resttypes

import "time"

// Message represents a single message in a conversation with the remote model.
// Messages are immutable once created.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Message roles. The remote chat-completion protocol recognizes exactly these.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ResponseSource identifies which path produced a turn's response text.
type ResponseSource string

const (
	// SourceRemote means the text came back from the hosted completion service.
	SourceRemote ResponseSource = "remote"
	// SourceFallback means the text was selected from the guidance catalog.
	SourceFallback ResponseSource = "fallback"
)

// DegradeReason explains why a turn fell back to the guidance catalog.
type DegradeReason string

const (
	// DegradeNone is set on turns answered by the remote service.
	DegradeNone DegradeReason = ""
	// DegradeNotConfigured means no API key was present, so no network
	// attempt was made.
	DegradeNotConfigured DegradeReason = "not_configured"
	// DegradeRemoteFailure means the remote call was attempted and failed
	// (transport error, non-2xx status, or empty completion).
	DegradeRemoteFailure DegradeReason = "remote_failure"
)

// TurnResult is the outcome of one conversation turn. Every turn produces a
// result with displayable text; callers can inspect Source and Reason to tell
// a genuine remote answer from a degraded one without catching errors.
type TurnResult struct {
	Text   string         `json:"text"`
	Source ResponseSource `json:"source"`
	Intent IntentCategory `json:"intent,omitempty"`
	Reason DegradeReason  `json:"reason,omitempty"`
}

// Answered reports whether the turn was answered by the remote service.
func (r TurnResult) Answered() bool {
	return r.Source == SourceRemote
}

// Degraded reports whether the turn fell back to the guidance catalog.
func (r TurnResult) Degraded() bool {
	return r.Source == SourceFallback
}

// SpecResult is the outcome of one test-specification generation request.
// It mirrors TurnResult: the document is always present, Source tells the
// caller whether it was generated remotely or filled from the template.
type SpecResult struct {
	Document string         `json:"document"`
	Source   ResponseSource `json:"source"`
	Reason   DegradeReason  `json:"reason,omitempty"`
}

// SystemStats is a read-only snapshot of a conversation service instance.
type SystemStats struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	Configured    bool   `json:"api_key_configured"`
	HistoryLength int    `json:"conversation_history_length"`
}
