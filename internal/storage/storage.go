package storage

import (
	"time"

	"btt/internal/config"
	"btt/internal/domain"
)

// Storage persists and loads check reports (e.g. for the drift viewer).
type Storage interface {
	Save(results []domain.CheckResult, duration time.Duration, workers int) error
	Load() (*domain.CheckReport, error)
	// SaveReport writes the full report (e.g. after marking entries resolved).
	SaveReport(report *domain.CheckReport) error
}

// JSONStorage stores reports in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
