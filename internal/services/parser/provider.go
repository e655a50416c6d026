package parser

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderOpenAI uses the OpenAI chat completions API
	ProviderOpenAI ProviderType = "openai"
	// ProviderClaude uses the Anthropic Claude API
	ProviderClaude ProviderType = "claude"
	// ProviderGemini uses the Google Gemini API
	ProviderGemini ProviderType = "gemini"
)

// Provider defines the interface for query-parsing completions
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Type() ProviderType
}

// resolveProviderType maps a request value onto the closed provider set,
// falling back to the configured default when empty.
func resolveProviderType(value string, config *common.LLMConfig) (ProviderType, error) {
	if value == "" {
		value = string(config.DefaultProvider)
	}
	switch ProviderType(value) {
	case ProviderOpenAI, ProviderClaude, ProviderGemini:
		return ProviderType(value), nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", value)
	}
}

// newProvider constructs the provider implementation for the given type.
// The switch is exhaustive over the closed provider set.
func newProvider(providerType ProviderType, apiKey string, config *common.LLMConfig, logger arbor.ILogger) (Provider, error) {
	switch providerType {
	case ProviderOpenAI:
		return newOpenAIProvider(&config.OpenAI, apiKey, logger), nil
	case ProviderClaude:
		return newClaudeProvider(&config.Claude, apiKey, logger), nil
	case ProviderGemini:
		return newGeminiProvider(&config.Gemini, apiKey, logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerType)
	}
}
