package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider calls the Google generative-language API.
type GeminiProvider struct {
	Model  string
	APIKey string
}

// NewGeminiProvider constructs a GeminiProvider.
func NewGeminiProvider(model, apiKey string) *GeminiProvider {
	return &GeminiProvider{Model: model, APIKey: apiKey}
}

// Generate envia o prompt ao Gemini e devolve o texto concatenado da resposta.
func (g *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	model.SetTemperature(0.3)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text candidates")
	}
	return sb.String(), nil
}
