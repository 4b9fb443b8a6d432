package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"execbench/internal/domain"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar
func NewProgressBar(count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(
			color.CyanString("Running requests: ")+
				color.GreenString("[ok: 0")+
				" | "+
				color.RedString("failed: 0]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Update updates the progress bar with ok and failure counts
func (p *ProgressBar) Update(okCount, failCount int) {
	p.bar.Set(okCount + failCount)
	p.bar.Describe(
		color.CyanString("Running requests: ") +
			color.GreenString("[ok: %d", okCount) +
			" | " +
			color.RedString("failed: %d]", failCount),
	)
}

// ReportFailure echoes a failed request above the bar the moment it happens,
// so failures are visible while the run is still going.
func (p *ProgressBar) ReportFailure(o domain.Outcome) {
	p.bar.Clear()
	switch o.Kind {
	case domain.KindMismatch:
		color.Yellow("[!] request %d: status: %s, output: %q (expected %q), time: %.2fs",
			o.Index, o.Status, o.Observed, o.Expected, o.Elapsed.Seconds())
	case domain.KindExecutionFailed:
		color.Red("[!] request %d: status: %s, time: %.2fs",
			o.Index, o.Status, o.Elapsed.Seconds())
	default:
		color.Red("[!] request %d: %s error: %v, time: %.2fs",
			o.Index, o.Kind, o.Err, o.Elapsed.Seconds())
	}
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
