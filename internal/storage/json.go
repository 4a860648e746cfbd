package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"btt/internal/domain"
)

// NewReport summarizes check results into a report
func NewReport(results []domain.CheckResult, duration time.Duration, workers int) *domain.CheckReport {
	report := &domain.CheckReport{
		Meta: domain.CheckReportMeta{
			TotalSpecs:      len(results),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         workers,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: results,
	}

	for i, r := range results {
		switch {
		case r.Errored():
			report.Meta.ErroredSpecs++
		case r.Conforms():
			report.Meta.ConformingSpecs++
		default:
			report.Meta.DriftedSpecs++
		}
		report.Meta.Entries += len(r.Entries)
		report.Meta.Fixed += r.Fixed
		if r.Error != nil && r.ErrorMessage == "" {
			report.Details[i].ErrorMessage = r.Error.Error()
		}
	}
	return report
}

// Save writes check results to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.CheckResult, duration time.Duration, workers int) error {
	return s.SaveReport(NewReport(results, duration, workers))
}

// Load reads the last check report from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.CheckReport, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.CheckReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}

// SaveReport writes the full report to the configured JSON file.
func (s *JSONStorage) SaveReport(report *domain.CheckReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
