package llm

import (
	"context"
	"fmt"
	"strings"
)

// ProviderID identifies a configured text-generation backend.
type ProviderID string

const (
	ProviderAnthropic ProviderID = "anthropic"
	ProviderOpenAI    ProviderID = "openai"
	ProviderGemini    ProviderID = "gemini"
)

// GenerationConfig contains the per-call parameters for text generation.
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// Provider is an interface for text-generation backends.
type Provider interface {
	// Complete generates text for the prompt in a single attempt.
	Complete(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)

	// Name returns the provider identifier
	Name() ProviderID
}

// AuthProfile describes the credentials and model for one provider.
type AuthProfile struct {
	Provider ProviderID
	APIKey   string
	Model    string
}

// ProviderError is the normalized form of any backend failure
// (timeout, quota, malformed response).
type ProviderError struct {
	Provider ProviderID
	Err      error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying backend error
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// UnavailableError is returned when every configured provider failed.
// The attempts are recorded in the order they were tried.
type UnavailableError struct {
	Attempts []*ProviderError
}

// Error implements the error interface
func (e *UnavailableError) Error() string {
	names := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		names = append(names, string(a.Provider))
	}
	return fmt.Sprintf("generation unavailable: all providers failed (%s)", strings.Join(names, ", "))
}

// ProviderFactory creates providers from auth profiles
type ProviderFactory struct{}

// NewProvider creates a new provider based on the auth profile
func (f *ProviderFactory) NewProvider(profile AuthProfile) (Provider, error) {
	if profile.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", profile.Provider)
	}

	switch profile.Provider {
	case ProviderAnthropic:
		return NewAnthropicProvider(profile.APIKey, profile.Model), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(profile.APIKey, profile.Model), nil
	case ProviderGemini:
		return NewGeminiProvider(profile.APIKey, profile.Model), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", profile.Provider)
	}
}
