package repository

import (
	"context"

	"github.com/SIDx15/CloudProbe/internal/domain/entity"
)

// LLMRepository defines the interface for the generative-language provider.
type LLMRepository interface {
	// GenerateQuery turns a natural-language question into a Cloud Logging
	// filter string.
	GenerateQuery(ctx context.Context, question string) (string, error)

	// AnalyzeResults answers the question from a summary of the returned
	// entries plus a small sample of them.
	AnalyzeResults(ctx context.Context, question string, summary entity.ResultsSummary, samples []entity.LogEntry) (string, error)
}
