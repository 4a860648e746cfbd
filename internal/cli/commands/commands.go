package commands

import (
	"btt/internal/cli"
	"btt/internal/config"
	"btt/internal/discovery"
	"btt/internal/execution"
	"btt/internal/storage"
	"btt/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Scaffold *ScaffoldCommand
	Check    *CheckCommand
	List     *ListCommand
	View     *ViewCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	finder := discovery.NewFinder(cfg, discovery.NewFilter())
	runner := execution.NewRunner(cfg)
	pool := execution.NewWorkerPool(cfg, runner)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	driftViewer := ui.NewDriftViewer(cfg, jsonStorage)

	return &Commands{
		Scaffold: NewScaffoldCommand(cfg, finder, pool, formatter),
		Check:    NewCheckCommand(cfg, finder, pool, jsonStorage, formatter, driftViewer),
		List:     NewListCommand(cfg, finder, formatter),
		View:     NewViewCommand(cfg, jsonStorage, driftViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	preRun := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		return flags.Apply(cmd, cfg)
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", config.DefaultProjectPath, "Project root holding .btt.yml and .env")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print a line for every processed spec")

	// Scaffold command
	scaffoldCmd := &cobra.Command{
		Use:     "scaffold [tree files...]",
		Short:   "Generate test files from tree specs",
		Long:    "Emit one Go test file per tree spec, with a nested t.Run scope for every branch and leaf",
		RunE:    c.Scaffold.Execute,
		PreRunE: preRun,
	}
	scaffoldCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of processors to use")
	scaffoldCmd.Flags().StringVarP(&flags.SpecPath, "spec-path", "s", "", "Path to the folder where spec detection should start")
	scaffoldCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter specs by name pattern (supports wildcards, e.g., '*hash*')")
	scaffoldCmd.Flags().BoolVar(&flags.Stdout, "stdout", false, "Print the generated source instead of writing files")
	scaffoldCmd.Flags().BoolVar(&flags.Force, "force", false, "Overwrite existing test files")
	scaffoldCmd.Flags().BoolVar(&flags.EmitSkip, "skip", false, "Emit a t.Skip placeholder into every leaf")
	scaffoldCmd.Flags().BoolVar(&flags.FormatDescriptions, "format-descriptions", false, "Capitalize leaf descriptions and end them with a period")
	scaffoldCmd.Flags().BoolVar(&flags.StripPrefixes, "strip-prefixes", false, "Drop leading when/given/it keywords from identifiers")
	scaffoldCmd.Flags().StringVar(&flags.PackageName, "package", "", "Package name of the generated files")
	rootCmd.AddCommand(scaffoldCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check [tree files...]",
		Short:   "Check test files against their tree specs",
		Long:    "Compare the structure of existing test files with their tree specs and report any drift",
		RunE:    c.Check.Execute,
		PreRunE: preRun,
	}
	checkCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of processors to use")
	checkCmd.Flags().StringVarP(&flags.SpecPath, "spec-path", "s", "", "Path to the folder where spec detection should start")
	checkCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter specs by name pattern (supports wildcards, e.g., '*hash*')")
	checkCmd.Flags().StringVar(&flags.Reordered, "reordered", config.DefaultReordered, "Severity of reordered scopes: error, warning or off")
	checkCmd.Flags().BoolVar(&flags.DetectRenames, "detect-renames", false, "Report a missing and an unexpected scope at the same position as a rename")
	checkCmd.Flags().BoolVar(&flags.StripPrefixes, "strip-prefixes", false, "Drop leading when/given/it keywords from identifiers")
	checkCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the report as JSON")
	checkCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on the first drifted spec")
	checkCmd.Flags().BoolVar(&flags.Open, "open", false, "Open the drift viewer when the check finds drift")
	checkCmd.Flags().BoolVar(&flags.Fix, "fix", false, "Insert missing scopes and restore scope order in the test files")
	checkCmd.Flags().BoolVar(&flags.Stdout, "stdout", false, "With --fix, print the fixed sources instead of writing files")
	rootCmd.AddCommand(checkCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered tree specs",
		Long:    "Scan and list all tree specs, optionally with the scopes they describe",
		RunE:    c.List.Execute,
		PreRunE: preRun,
	}
	listCmd.Flags().StringVarP(&flags.SpecPath, "spec-path", "s", "", "Path to the folder where spec detection should start")
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter specs by name pattern (supports wildcards, e.g., '*hash*')")
	listCmd.Flags().BoolVarP(&flags.Tree, "tree", "t", false, "Show each spec's tree with the identifier of every scope")
	listCmd.Flags().BoolVar(&flags.StripPrefixes, "strip-prefixes", false, "Drop leading when/given/it keywords from identifiers")
	rootCmd.AddCommand(listCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:     "view",
		Short:   "View structural drift interactively",
		Long:    "Display the drift found by the last check in an interactive viewer",
		RunE:    c.View.Execute,
		PreRunE: preRun,
	}
	rootCmd.AddCommand(viewCmd)
}
