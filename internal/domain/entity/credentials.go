package entity

import (
	"encoding/json"
	"fmt"
)

// ServiceAccountKey is the parsed form of a GCP service account JSON key.
// Only the fields CloudProbe needs are mapped; the raw JSON is kept so the
// full key can be handed to the Google SDK untouched.
type ServiceAccountKey struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientID    string `json:"client_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`

	Raw []byte `json:"-"`
}

// requiredKeyFields são os campos obrigatórios de uma chave de service account.
var requiredKeyFields = []string{"type", "project_id", "client_id", "client_email", "private_key"}

// ParseServiceAccountKey parses and validates service account key JSON.
// A field that is absent or empty is reported by name.
func ParseServiceAccountKey(data []byte) (*ServiceAccountKey, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("invalid JSON format in credentials: %w", err)
	}

	for _, field := range requiredKeyFields {
		raw, ok := fields[field]
		if !ok {
			return nil, fmt.Errorf("missing required field: %s", field)
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil || value == "" {
			return nil, fmt.Errorf("missing required field: %s", field)
		}
	}

	var key ServiceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("invalid JSON format in credentials: %w", err)
	}
	key.Raw = data

	return &key, nil
}
