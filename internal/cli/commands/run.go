package commands

import (
	"context"
	"fmt"
	"time"

	"execbench/internal/config"
	"execbench/internal/domain"
	"execbench/internal/execution"
	"execbench/internal/history"
	"execbench/internal/protocol"
	"execbench/internal/stats"
	"execbench/internal/storage"
	"execbench/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := rc.config.Validate(); err != nil {
		return err
	}

	fmt.Printf("Dispatching %d request(s) across %d worker(s) against %s\n",
		rc.config.Requests, rc.config.Workers, rc.config.Endpoint)

	// Open run history; a broken history store never blocks a run
	run := &history.Run{
		StartedAt: time.Now(),
		Endpoint:  rc.config.Endpoint,
		Requests:  rc.config.Requests,
		Workers:   rc.config.Workers,
	}
	store, err := history.Open(rc.config.GetHistoryPath())
	if err != nil {
		color.Yellow("run history disabled: %v", err)
	} else {
		defer store.Close()
		if err := store.CreateRun(run); err != nil {
			color.Yellow("run history disabled: %v", err)
			store = nil
		}
	}

	// Build the execution pipeline
	client := execution.NewClient(rc.config.Endpoint, rc.config.HTTPTimeout, rc.config.Workers)
	runner := execution.NewRunner(client, protocol.Options{
		RuntimeName:    rc.config.RuntimeName,
		RuntimeVersion: rc.config.RuntimeVersion,
		ExecTime:       rc.config.ExecTime,
		AllowRead:      true,
	})
	pool := execution.NewWorkerPool(rc.config, runner)

	// Create and set progress bar
	progressBar := ui.NewProgressBar(rc.config.Requests)
	pool.SetProgress(progressBar)

	// Dispatch requests
	outcomes, wall, err := pool.Execute(context.Background(), rc.config.Requests)
	if err != nil {
		return err
	}

	// Aggregate latencies and collect failures
	summary := stats.Summarize(outcomes, wall)
	failures := domain.FailuresOf(outcomes)

	// Save results
	if err := rc.storage.Save(summary.Meta(rc.config.Workers, rc.config.Endpoint), failures); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	if store != nil {
		rc.recordHistory(store, run, summary, outcomes)
	}

	// Print stats
	if err := rc.formatter.PrintRunStats(); err != nil {
		return err
	}

	// Open the failures viewer if requested
	if rc.config.Flags.OpenFailures && len(failures) > 0 {
		results, err := rc.storage.Load()
		if err != nil {
			return err
		}
		return rc.viewer.View(results)
	}

	return nil
}

// recordHistory writes the finished run and its per-request records
func (rc *RunCommand) recordHistory(store *history.Store, run *history.Run, summary stats.Summary, outcomes []domain.Outcome) {
	run.Succeeded = summary.Succeeded
	run.Mismatches = summary.Mismatches
	run.TransportErrors = summary.TransportErrors
	run.ExecutionFailures = summary.ExecutionFailures
	run.ProtocolErrors = summary.ProtocolErrors
	run.WallMs = summary.Wall.Milliseconds()
	run.MeanMs = float64(summary.Mean.Microseconds()) / 1000
	run.MinMs = summary.Min.Milliseconds()
	run.MaxMs = summary.Max.Milliseconds()
	run.P50Ms = summary.P50.Milliseconds()
	run.P95Ms = summary.P95.Milliseconds()
	run.P99Ms = summary.P99.Milliseconds()

	if err := store.SaveOutcomes(run.ID, outcomes); err != nil {
		color.Yellow("run history: %v", err)
		return
	}
	if err := store.FinishRun(run); err != nil {
		color.Yellow("run history: %v", err)
	}
}
