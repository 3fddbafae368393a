package gcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/logging"
	"cloud.google.com/go/logging/logadmin"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/SIDx15/CloudProbe/internal/domain/entity"
	"github.com/SIDx15/CloudProbe/internal/domain/repository"
	"github.com/SIDx15/CloudProbe/internal/shared/types"
)

// GCPRepositoryImpl implementa o GCPRepository com cache do cliente de logging.
type GCPRepositoryImpl struct {
	client    *logadmin.Client
	projectID string
	mu        sync.Mutex
}

// NewGCPRepository cria uma nova implementação do GCPRepository.
func NewGCPRepository() repository.GCPRepository {
	return &GCPRepositoryImpl{}
}

// ValidateCredentials parses the service account key, checks the required
// fields and builds the logadmin client for the key's project.
func (r *GCPRepositoryImpl) ValidateCredentials(ctx context.Context, keyJSON []byte) (*entity.ServiceAccountKey, error) {
	key, err := entity.ParseServiceAccountKey(keyJSON)
	if err != nil {
		return nil, err
	}

	// Confere que a chave é aceita pela biblioteca de autenticação antes de
	// criar o cliente.
	if _, err := google.CredentialsFromJSON(ctx, keyJSON, logging.ReadScope); err != nil {
		return nil, fmt.Errorf("error setting up credentials: %w", err)
	}

	client, err := logadmin.NewClient(ctx, key.ProjectID, option.WithCredentialsJSON(keyJSON))
	if err != nil {
		return nil, fmt.Errorf("error creating logging client for project %s: %w", key.ProjectID, err)
	}

	r.mu.Lock()
	if r.client != nil {
		r.client.Close()
	}
	r.client = client
	r.projectID = key.ProjectID
	r.mu.Unlock()

	return key, nil
}

// ProjectID retorna o projeto da última chave validada.
func (r *GCPRepositoryImpl) ProjectID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.projectID
}

// ExecuteQuery runs the filter newest-first and returns up to maxResults
// flattened entries.
func (r *GCPRepositoryImpl) ExecuteQuery(ctx context.Context, filter string, maxResults int) ([]entity.LogEntry, error) {
	r.mu.Lock()
	client := r.client
	r.mu.Unlock()

	if client == nil {
		return nil, types.ErrNotInitialized
	}

	it := client.Entries(ctx, logadmin.Filter(filter), logadmin.NewestFirst())

	results := make([]entity.LogEntry, 0, maxResults)
	for len(results) < maxResults {
		entry, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error executing query: %w", err)
		}
		results = append(results, flattenEntry(entry))
	}

	return results, nil
}

// Close libera o cliente de logging, se existir.
func (r *GCPRepositoryImpl) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

// flattenEntry converte uma entrada do SDK no registro plano de sete campos.
func flattenEntry(entry *logging.Entry) entity.LogEntry {
	flat := entity.LogEntry{
		LogName:  entry.LogName,
		Severity: entry.Severity.String(),
	}

	if !entry.Timestamp.IsZero() {
		flat.Timestamp = entry.Timestamp.UTC().Format(time.RFC3339)
	}
	if entry.Resource != nil {
		flat.ResourceType = entry.Resource.Type
	}

	switch payload := entry.Payload.(type) {
	case string:
		flat.TextPayload = payload
	case *structpb.Struct:
		fields := payload.AsMap()
		if msg, ok := fields["message"].(string); ok {
			flat.TextPayload = msg
		}
		if data, err := json.Marshal(fields); err == nil {
			flat.JSONPayload = string(data)
		}
	case nil:
		// Entradas proto-payload ou vazias ficam sem payload achatado.
	default:
		flat.TextPayload = fmt.Sprint(payload)
	}

	if len(entry.Labels) > 0 {
		if data, err := json.Marshal(entry.Labels); err == nil {
			flat.Labels = string(data)
		}
	}

	return flat
}
