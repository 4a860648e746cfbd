package commands

import (
	"fmt"

	"btt/internal/config"
	"btt/internal/discovery"
	"btt/internal/execution"
	"btt/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ScaffoldCommand handles the scaffold command
type ScaffoldCommand struct {
	config     *config.Config
	finder     *discovery.Finder
	scaffolder execution.Scaffolder
	formatter  *ui.Formatter
}

// NewScaffoldCommand creates a new ScaffoldCommand
func NewScaffoldCommand(cfg *config.Config, finder *discovery.Finder, scaffolder execution.Scaffolder, formatter *ui.Formatter) *ScaffoldCommand {
	return &ScaffoldCommand{
		config:     cfg,
		finder:     finder,
		scaffolder: scaffolder,
		formatter:  formatter,
	}
}

// Execute runs the command
func (sc *ScaffoldCommand) Execute(cmd *cobra.Command, args []string) error {
	specs, err := sc.finder.Find(args)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		color.Yellow("No tree specs to scaffold")
		return nil
	}

	if !sc.config.Flags.Stdout {
		sc.scaffolder.SetProgress(ui.NewScaffoldProgressBar(len(specs)))
	}

	results, _ := sc.scaffolder.Scaffold(specs)

	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
		}
	}

	if sc.config.Flags.Stdout {
		for _, result := range results {
			if result.Error != nil {
				color.Red("✗ %s: %v", result.TreePath, result.Error)
				continue
			}
			if _, err := cmd.OutOrStdout().Write(result.Source); err != nil {
				return fmt.Errorf("write source: %w", err)
			}
		}
	} else {
		sc.formatter.SetOutput(cmd.OutOrStdout())
		sc.formatter.PrintScaffoldSummary(results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d spec(s) could not be scaffolded", failed, len(results))
	}
	return nil
}
