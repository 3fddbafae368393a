package llm

import (
	"errors"
	"testing"

	"github.com/SIDx15/CloudProbe/internal/shared/types"
)

func TestNewLLMRepositoryDefaults(t *testing.T) {
	repo, err := NewLLMRepository("", "", "key")
	if err != nil {
		t.Fatalf("NewLLMRepository(defaults) returned error: %v", err)
	}
	impl := repo.(*LLMRepositoryImpl)
	gemini, ok := impl.provider.(*GeminiProvider)
	if !ok {
		t.Fatalf("default provider is %T, want *GeminiProvider", impl.provider)
	}
	if gemini.Model != "gemini-1.5-flash" {
		t.Errorf("default Gemini model = %q", gemini.Model)
	}
}

func TestNewLLMRepositoryGroq(t *testing.T) {
	repo, err := NewLLMRepository(ProviderGroq, "", "key")
	if err != nil {
		t.Fatalf("NewLLMRepository(groq) returned error: %v", err)
	}
	impl := repo.(*LLMRepositoryImpl)
	groq, ok := impl.provider.(*GroqProvider)
	if !ok {
		t.Fatalf("provider is %T, want *GroqProvider", impl.provider)
	}
	if groq.Model != "llama3-70b-8192" {
		t.Errorf("default Groq model = %q", groq.Model)
	}
}

func TestNewLLMRepositoryModelOverride(t *testing.T) {
	repo, err := NewLLMRepository(ProviderGemini, "gemini-1.5-pro", "key")
	if err != nil {
		t.Fatalf("NewLLMRepository returned error: %v", err)
	}
	gemini := repo.(*LLMRepositoryImpl).provider.(*GeminiProvider)
	if gemini.Model != "gemini-1.5-pro" {
		t.Errorf("Model = %q, want the explicit override", gemini.Model)
	}
}

func TestNewLLMRepositoryNoKey(t *testing.T) {
	if _, err := NewLLMRepository(ProviderGemini, "", ""); !errors.Is(err, types.ErrNoAPIKey) {
		t.Errorf("NewLLMRepository without key = %v, want ErrNoAPIKey", err)
	}
}

func TestNewLLMRepositoryUnsupported(t *testing.T) {
	if _, err := NewLLMRepository("claude", "", "key"); err == nil {
		t.Error("NewLLMRepository(unsupported) succeeded, want error")
	}
}
