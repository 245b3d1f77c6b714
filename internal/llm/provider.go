package llm

import (
	"fmt"
	"strings"

	"github.com/seeitmyway/perspective/internal/domain"
)

// Provider constants
const (
	ProviderOpenAI   = "openai"
	ProviderCerebras = "cerebras"
	ProviderGemini   = "gemini"
	ProviderMock     = "mock"
)

// NewClient creates a completion client based on the provider name.
// model is only meaningful for the OpenAI provider; the others use fixed
// models. Returns an error if the provider is unknown or the API key is
// empty (except for mock).
func NewClient(provider, apiKey, model string) (domain.CompletionClient, error) {
	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIClient(apiKey, model), nil

	case ProviderCerebras:
		if apiKey == "" {
			return nil, fmt.Errorf("CEREBRAS_API_KEY is required for Cerebras provider")
		}
		return NewCerebrasClient(apiKey), nil

	case ProviderGemini:
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiClient(apiKey), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (valid options: openai, cerebras, gemini, mock)", provider)
	}
}

// stripFences removes markdown code fences around a JSON payload.
// The schema constraint should prevent fences, but a fenced payload must
// not fail parsing spuriously.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
