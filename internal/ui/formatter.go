package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"execbench/internal/config"
	"execbench/internal/domain"
	"execbench/internal/history"
)

// Formatter formats and displays run output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintRunStats reads the last run's saved output and displays the summary
func (f *Formatter) PrintRunStats() error {
	outputPath := f.config.GetOutputPath()

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read results file: %w", err)
	}

	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse results: %w", err)
	}

	meta := output.Meta
	failed := meta.TotalRequests - meta.Succeeded

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                      Load Run Statistics                      ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	color.White("Target: %s\n", meta.Endpoint)

	rows := []struct {
		label string
		value string
		paint func(format string, a ...interface{})
	}{
		{"Total Requests", fmt.Sprintf("%d", meta.TotalRequests), color.White},
		{"Succeeded", fmt.Sprintf("%d", meta.Succeeded), color.Green},
		{"Failed", fmt.Sprintf("%d", failed), color.Red},
		{"Mismatches", fmt.Sprintf("%d", meta.Mismatches), color.Red},
		{"Transport Errors", fmt.Sprintf("%d", meta.TransportErrors), color.Red},
		{"Execution Failures", fmt.Sprintf("%d", meta.ExecutionFailures), color.Red},
		{"Protocol Errors", fmt.Sprintf("%d", meta.ProtocolErrors), color.Red},
		{"Wall Time", fmt.Sprintf("%.2fs", meta.WallSeconds), color.White},
		{"Mean Latency", fmt.Sprintf("%.3fs", meta.MeanSeconds), color.White},
		{"Min Latency", fmt.Sprintf("%.3fs", meta.MinSeconds), color.White},
		{"Max Latency", fmt.Sprintf("%.3fs", meta.MaxSeconds), color.White},
		{"P50 Latency", fmt.Sprintf("%.3fs", meta.P50Seconds), color.White},
		{"P95 Latency", fmt.Sprintf("%.3fs", meta.P95Seconds), color.White},
		{"P99 Latency", fmt.Sprintf("%.3fs", meta.P99Seconds), color.White},
		{"Workers", fmt.Sprintf("%d", meta.Workers), color.White},
		{"Timestamp", meta.Timestamp, color.White},
	}

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		if i > 0 {
			fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		}
		fmt.Printf("│ %-31s │ ", row.label)
		row.paint("%-27s │\n", row.value)
	}
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Println()
	if failed == 0 {
		color.Green("✓ All %d requests matched their expected output!", meta.TotalRequests)
	} else {
		color.Red("✗ %d of %d request(s) failed", failed, meta.TotalRequests)
		fmt.Println()
		f.printFailureList(output.Failures)
	}

	return nil
}

// printFailureList prints one line per failed request
func (f *Formatter) printFailureList(failures []domain.RequestFailure) {
	for _, failure := range failures {
		switch failure.Kind {
		case domain.KindMismatch:
			color.Red("[!] request %d: output %q (expected %q), time: %.2fs",
				failure.Index, failure.Observed, failure.Expected, failure.ElapsedSeconds)
		case domain.KindExecutionFailed:
			color.Red("[!] request %d: status: %s, time: %.2fs",
				failure.Index, failure.Status, failure.ElapsedSeconds)
		default:
			color.Red("[!] request %d: %s: %s, time: %.2fs",
				failure.Index, failure.Kind, failure.Message, failure.ElapsedSeconds)
		}
	}
}

// PrintRunsTable lists recorded runs, newest first
func (f *Formatter) PrintRunsTable(runs []*history.Run) {
	if len(runs) == 0 {
		color.Yellow("No runs recorded yet")
		return
	}

	color.Cyan("%-5s %-20s %-9s %-8s %-7s %-7s %-10s %-10s %-10s",
		"ID", "Started", "Requests", "Workers", "OK", "Failed", "Wall", "Mean", "P95")
	for _, run := range runs {
		line := fmt.Sprintf("%-5d %-20s %-9d %-8d %-7d %-7d %-10s %-10s %-10s",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Requests,
			run.Workers,
			run.Succeeded,
			run.Failed(),
			formatMs(run.WallMs),
			formatMs(int64(run.MeanMs)),
			formatMs(run.P95Ms),
		)
		if run.Failed() > 0 {
			color.Red("%s", line)
		} else {
			fmt.Println(line)
		}
	}
}

// PrintRunRequests shows one run's per-request records
func (f *Formatter) PrintRunRequests(run *history.Run, records []*history.RequestRecord) {
	color.Cyan("Run %d: %d request(s) against %s", run.ID, run.Requests, run.Endpoint)
	fmt.Println()

	if len(records) == 0 {
		color.Yellow("  no per-request records for this run")
		return
	}
	for _, rec := range records {
		if rec.OK {
			color.Green("  ✓ request %-6d %6dms", rec.Index, rec.DurationMs)
		} else {
			color.Red("  ✗ request %-6d %6dms  %s: %s", rec.Index, rec.DurationMs, rec.Kind, rec.Message)
		}
	}
}

func formatMs(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}
