package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// GroqProvider calls the Groq inference API, which is OpenAI-compatible.
// Useful when no Gemini key is available; the free tier serves llama3 models.
type GroqProvider struct {
	Model  string
	APIKey string
	http   *http.Client
}

// NewGroqProvider constructs a GroqProvider with a 60-second timeout.
func NewGroqProvider(model, apiKey string) *GroqProvider {
	return &GroqProvider{
		Model:  model,
		APIKey: apiKey,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate sends the prompt to Groq. It retries once on transient failures
// before returning an error.
func (g *GroqProvider) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		text, err := g.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("groq generation failed after 2 attempts: %w", lastErr)
}

// --- OpenAI-compatible request/response types ---

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (g *GroqProvider) generateOnce(ctx context.Context, prompt string) (string, error) {
	reqBody := openAIRequest{
		Model: g.Model,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http POST groq: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	var apiResp openAIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return "", fmt.Errorf("decoding groq response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("groq API error (%s): %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices (status %d)", resp.StatusCode)
	}

	return apiResp.Choices[0].Message.Content, nil
}
