package commands

import (
	"btt/internal/config"
	"btt/internal/discovery"
	"btt/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	finder    *discovery.Finder
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, finder *discovery.Finder, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		finder:    finder,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	specs, err := lc.finder.Find(args)
	if err != nil {
		return err
	}

	if len(specs) == 0 {
		color.Yellow("No tree specs found")
		return nil
	}

	lc.formatter.SetOutput(cmd.OutOrStdout())
	return lc.formatter.PrintSpecList(specs, lc.config.Flags.Tree)
}
