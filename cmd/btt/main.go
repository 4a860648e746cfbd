package main

import (
	"btt/internal/cli"
	"btt/internal/cli/commands"
	"btt/internal/config"

	"github.com/bsthun/gut"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "btt",
		Short:         "Branching Tree Technique test scaffolder",
		Long:          `Scaffold Go test files from Branching Tree Technique specs and check that existing test files still match the shape of their specs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		gut.Fatal("btt failed", err)
	}
}
