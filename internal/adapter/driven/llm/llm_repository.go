// Package llm implements the LLMRepository on top of interchangeable
// generative-language providers (Gemini, Groq).
package llm

import (
	"context"

	"github.com/SIDx15/CloudProbe/internal/domain/entity"
	"github.com/SIDx15/CloudProbe/internal/domain/repository"
	"github.com/SIDx15/CloudProbe/internal/shared/types"
)

// textProvider sends one prompt to a model and returns its raw text reply.
type textProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMRepositoryImpl implementa o LLMRepository sobre um textProvider.
type LLMRepositoryImpl struct {
	provider textProvider
}

// GenerateQuery turns a natural-language question into a Cloud Logging filter.
func (r *LLMRepositoryImpl) GenerateQuery(ctx context.Context, question string) (string, error) {
	text, err := r.provider.Generate(ctx, BuildQueryPrompt(question))
	if err != nil {
		return "", err
	}

	query := CleanQuery(text)
	if query == "" {
		return "", types.ErrEmptyQuery
	}
	return query, nil
}

// AnalyzeResults answers the question from the results summary and samples.
func (r *LLMRepositoryImpl) AnalyzeResults(ctx context.Context, question string, summary entity.ResultsSummary, samples []entity.LogEntry) (string, error) {
	return r.provider.Generate(ctx, BuildAnalysisPrompt(question, summary, samples))
}

var _ repository.LLMRepository = (*LLMRepositoryImpl)(nil)
