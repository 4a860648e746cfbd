package execution

import (
	"time"

	"btt/internal/domain"
	"btt/internal/ui"
)

// Checker checks tree specs against their test files
type Checker interface {
	Check(specs []string, failFast bool) ([]domain.CheckResult, time.Duration)
	SetProgress(progress *ui.ProgressBar)
}

// Scaffolder emits test files for tree specs
type Scaffolder interface {
	Scaffold(specs []string) ([]domain.ScaffoldResult, time.Duration)
	SetProgress(progress *ui.ProgressBar)
}

var (
	_ Checker    = (*WorkerPool)(nil)
	_ Scaffolder = (*WorkerPool)(nil)
)
