package commands

import (
	"execbench/internal/cli"
	"execbench/internal/config"
	"execbench/internal/storage"
	"execbench/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	Smoke    *SmokeCommand
	Runs     *RunsCommand
	Failures *FailuresCommand
	Manifest *ManifestCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, jsonStorage, formatter, errorViewer),
		Smoke:    NewSmokeCommand(cfg),
		Runs:     NewRunsCommand(cfg, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
		Manifest: NewManifestCommand(cfg),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Dispatch echo requests against the execution service",
		Long:  "Generate echo programs, dispatch them across concurrent workers and verify every response against its expected output",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Apply(flags.ToConfigFlags())
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Requests, "requests", "n", config.DefaultRequests, "Number of requests to dispatch")
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "w", config.DefaultWorkers, "Number of concurrent workers")
	runCmd.Flags().StringVarP(&flags.URL, "url", "u", "", "Execution endpoint URL")
	runCmd.Flags().DurationVarP(&flags.Timeout, "timeout", "t", 0, "Client-side timeout per request")
	runCmd.Flags().StringVar(&flags.ExecTime, "exec-time", "", "Service-side execution time limit (e.g. 2s)")
	runCmd.Flags().StringVar(&flags.Runtime, "runtime", "", "Runtime the echo programs are written for")
	runCmd.Flags().StringVar(&flags.RuntimeVersion, "runtime-version", "", "Runtime version to request")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run records failures")
	rootCmd.AddCommand(runCmd)

	// Smoke command
	smokeCmd := &cobra.Command{
		Use:   "smoke",
		Short: "Send a single health-check request",
		Long:  "Send one echo request and report whether the service executed it",
		RunE:  c.Smoke.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Apply(flags.ToConfigFlags())
			return nil
		},
	}
	smokeCmd.Flags().StringVarP(&flags.Message, "message", "m", config.DefaultSmokeMessage, "Message the echo program prints")
	smokeCmd.Flags().StringVarP(&flags.URL, "url", "u", "", "Execution endpoint URL")
	smokeCmd.Flags().DurationVarP(&flags.Timeout, "timeout", "t", 0, "Client-side timeout for the request")
	rootCmd.AddCommand(smokeCmd)

	// Runs command
	runsCmd := &cobra.Command{
		Use:   "runs [id]",
		Short: "List recorded runs or inspect one run",
		Long:  "List run history from the local database, or show a single run's per-request records by id",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Runs.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Apply(flags.ToConfigFlags())
			return nil
		},
	}
	runsCmd.Flags().IntVarP(&flags.Limit, "limit", "l", config.DefaultRunsLimit, "Maximum number of runs to list")
	rootCmd.AddCommand(runsCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View request failures interactively",
		Long:  "Display the request failures recorded by the last run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// Manifest command
	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Generate the runtime environment manifest",
		Long:  "Merge nix package lists from the runtime descriptors into the manifest template",
		RunE:  c.Manifest.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Apply(flags.ToConfigFlags())
			return nil
		},
	}
	manifestCmd.Flags().StringVar(&flags.Template, "template", "", "Manifest template path")
	manifestCmd.Flags().StringVar(&flags.RuntimesDir, "runtimes", "", "Runtime descriptor directory")
	manifestCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Generated manifest path")
	rootCmd.AddCommand(manifestCmd)
}
