package resttypes

// RemoteConfig holds the configuration for the remote completion service.
// It is read once at startup; if APIKey is empty the remote client stays
// disabled for the process lifetime and every turn takes the fallback path.
type RemoteConfig struct {
	Provider    string            `json:"provider"`
	BaseURL     string            `json:"base_url"`
	Model       string            `json:"model"`
	APIKey      string            `json:"-"`
	Headers     map[string]string `json:"headers,omitempty"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
}

// Configured reports whether the remote service can be called at all.
func (c RemoteConfig) Configured() bool {
	return c.APIKey != ""
}
