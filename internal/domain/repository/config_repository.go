package repository

import "github.com/SIDx15/CloudProbe/internal/shared/types"

// ConfigRepository defines the interface for loading configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
}
