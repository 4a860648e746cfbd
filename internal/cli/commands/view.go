package commands

import (
	"fmt"

	"btt/internal/config"
	"btt/internal/storage"
	"btt/internal/ui"

	"github.com/spf13/cobra"
)

// ViewCommand handles the view command
type ViewCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *ViewCommand {
	return &ViewCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := vc.storage.Load()
	if err != nil {
		return fmt.Errorf("no check report found, run 'btt check' first: %w", err)
	}
	return vc.viewer.View(report)
}
