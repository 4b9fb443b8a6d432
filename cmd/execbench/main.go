package main

import (
	"fmt"
	"os"

	"execbench/internal/cli"
	"execbench/internal/cli/commands"
	"execbench/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "execbench",
		Short:   "Load harness for the code execution service",
		Long:    `A concurrent load harness for the code execution API. Dispatch batches of small echo programs across parallel workers, verify every response against its expected output and report latency statistics.`,
		Version: version,
	}

	// Create initial config from defaults and environment
	cfg := config.FromEnv()

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
