package llm

import (
	"fmt"

	"github.com/SIDx15/CloudProbe/internal/domain/repository"
	"github.com/SIDx15/CloudProbe/internal/shared/types"
)

// Provider names accepted by the factory.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// NewLLMRepository builds the LLMRepository for the chosen provider. An empty
// model falls back to the provider's default.
func NewLLMRepository(provider, model, apiKey string) (repository.LLMRepository, error) {
	if apiKey == "" {
		return nil, types.ErrNoAPIKey
	}
	if model == "" {
		model = defaultModelFor(provider)
	}

	switch provider {
	case ProviderGemini, "":
		return &LLMRepositoryImpl{provider: NewGeminiProvider(model, apiKey)}, nil
	case ProviderGroq:
		return &LLMRepositoryImpl{provider: NewGroqProvider(model, apiKey)}, nil
	default:
		return nil, fmt.Errorf("unsupported provider %q — must be one of: gemini, groq", provider)
	}
}

// defaultModelFor returns the default model name for each provider.
func defaultModelFor(provider string) string {
	switch provider {
	case ProviderGroq:
		return "llama3-70b-8192"
	default:
		return "gemini-1.5-flash"
	}
}
