package ui

import "btt/internal/domain"

// Viewer displays a check report in an interactive TUI
type Viewer interface {
	View(report *domain.CheckReport) error
}

var _ Viewer = (*DriftViewer)(nil)
