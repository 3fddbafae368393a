package repository

import (
	"context"

	"github.com/SIDx15/CloudProbe/internal/domain/entity"
)

// GCPRepository defines the interface for Google Cloud Logging interactions.
type GCPRepository interface {
	// Credential Operations
	ValidateCredentials(ctx context.Context, keyJSON []byte) (*entity.ServiceAccountKey, error)

	// Query Operations
	ExecuteQuery(ctx context.Context, filter string, maxResults int) ([]entity.LogEntry, error)

	Close() error
}
