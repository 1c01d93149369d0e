package main

import (
	"fmt"
	"os"

	"testenv/internal/cli"
	"testenv/internal/cli/commands"
	"testenv/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "testenv",
		Short:   "Test environment router",
		Long:    `Builds the test workspace for the frontend: node, unit (happy-dom), browser (chromium) and storybook profiles. Routes every test file to exactly one profile and checks the workspace for overlapping globs and colliding ports.`,
		Version: version,
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
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
