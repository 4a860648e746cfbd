package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"btt/internal/config"
	"btt/internal/discovery"
	"btt/internal/domain"
	"btt/internal/execution"
	"btt/internal/storage"
	"btt/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrDrift is returned when at least one test file drifted from its spec
var ErrDrift = errors.New("structural drift detected")

// CheckCommand handles the check command
type CheckCommand struct {
	config    *config.Config
	finder    *discovery.Finder
	checker   execution.Checker
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(
	cfg *config.Config,
	finder *discovery.Finder,
	checker execution.Checker,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *CheckCommand {
	return &CheckCommand{
		config:    cfg,
		finder:    finder,
		checker:   checker,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := cc.config.Flags
	if flags.Stdout && !flags.Fix {
		return errors.New("--stdout requires --fix")
	}
	if flags.Stdout && flags.JSON {
		return errors.New("--stdout cannot be combined with --json")
	}

	specs, err := cc.finder.Find(args)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		color.Yellow("No tree specs to check")
		return nil
	}

	if !flags.JSON && !flags.Stdout {
		cc.checker.SetProgress(ui.NewCheckProgressBar(len(specs)))
	}

	results, duration := cc.checker.Check(specs, flags.FailFast)
	report := storage.NewReport(results, duration, cc.config.Processors)

	if flags.Stdout {
		// Nothing was written, so the stored report stays as it was
		if err := cc.printFixed(cmd, results); err != nil {
			return err
		}
		return drift(report)
	}

	if err := cc.storage.SaveReport(report); err != nil {
		return fmt.Errorf("failed to save check report: %w", err)
	}

	if flags.JSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		cc.formatter.SetOutput(cmd.OutOrStdout())
		if flags.Verbose {
			for _, result := range results {
				if result.Conforms() {
					color.Green("✓ %s", result.TestPath)
				}
			}
		}
		cc.formatter.PrintCheckSummary(report)
	}

	if drift(report) == nil {
		return nil
	}

	if flags.Open && !flags.JSON {
		if err := cc.viewer.View(report); err != nil {
			return err
		}
	}
	return ErrDrift
}

// printFixed writes every fixed source between markers naming its file
func (cc *CheckCommand) printFixed(cmd *cobra.Command, results []domain.CheckResult) error {
	out := cmd.OutOrStdout()
	blue := color.New(color.FgBlue)
	for _, result := range results {
		if result.Errored() {
			color.Red("✗ %s: %s", result.TreePath, result.ErrorMessage)
			continue
		}
		if result.Source == nil {
			continue
		}
		blue.Fprintf(out, "--> %s\n", result.TestPath)
		if _, err := out.Write(result.Source); err != nil {
			return fmt.Errorf("write source: %w", err)
		}
		blue.Fprintln(out, "<--")
	}
	return nil
}

func drift(report *domain.CheckReport) error {
	if report.Meta.DriftedSpecs+report.Meta.ErroredSpecs == 0 {
		return nil
	}
	return ErrDrift
}
