package storage

import (
	"execbench/internal/config"
	"execbench/internal/domain"
)

// Storage persists and loads the last run's output (e.g. for the failures viewer).
type Storage interface {
	Save(meta domain.RunMeta, failures []domain.RequestFailure) error
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after acknowledgement updates).
	SaveOutput(output *domain.RunOutput) error
}

// JSONStorage stores run output in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
