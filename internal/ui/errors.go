package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"execbench/internal/config"
	"execbench/internal/domain"
	"execbench/internal/storage"
)

// ErrorViewer displays request failures in an interactive TUI
type ErrorViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config, st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays the last run's request failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.RunOutput) error {
	if len(results.Failures) == 0 {
		color.Green("✓ No request failures recorded!")
		return nil
	}

	// Track acknowledged failures (by index) - load from JSON
	acknowledged := make(map[int]bool)
	for i, failure := range results.Failures {
		if failure.Acknowledged {
			acknowledged[i] = true
		}
	}

	// Persist acknowledgement state next to the failures themselves
	saveAcknowledged := func() error {
		for i := range results.Failures {
			results.Failures[i].Acknowledged = acknowledged[i]
		}
		return ev.storage.SaveOutput(results)
	}

	// Create the application
	app := tview.NewApplication()

	// Create list for failed requests (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
			// When Enter is pressed, we'll show details (handled by key handler)
		})

	// Function to get formatted text for a list item
	getListItemText := func(index int) string {
		failure := results.Failures[index]
		name := fmt.Sprintf("request %d (%s)", failure.Index, failure.Kind)

		if acknowledged[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	// Function to update list item display with acknowledged status
	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		mainText := getListItemText(index)
		list.SetItemText(index, mainText, "")
	}

	// Add failed requests to the list with numbers and colors
	for i := range results.Failures {
		mainText := getListItemText(i)
		list.AddItem(mainText, "", 0, nil)
	}

	// Set list colors for better visibility
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Create stats header view (shows request and kind info)
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Create text view for failure details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	// Create a container with right padding for the details view
	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	// Create right side layout: stats on top, details below
	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// Create simple flex layout: list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	// Count unacknowledged failures
	countUnacknowledged := func() int {
		count := 0
		for i := range results.Failures {
			if !acknowledged[i] {
				count++
			}
		}
		return count
	}

	// Create header text view (so we can update it)
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	// Function to update header
	updateHeader := func() {
		unacknowledged := countUnacknowledged()
		headerText := fmt.Sprintf(" Request Failures (%d total, %d unacknowledged) | Use ↑↓ to navigate, [yellow]A[white] to acknowledge, → to view details, ← to go back, Ctrl+C to exit ", len(results.Failures), unacknowledged)
		headerView.SetText(headerText)
	}

	// Set initial header
	updateHeader()

	// Update details when selection changes
	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Failures) {
			failure := results.Failures[index]

			// Update stats header
			statsText := ev.formatFailureStats(failure)
			statsView.SetText(statsText)

			// Update failure details
			detailsView.SetText(ev.formatFailureDetails(failure))
		}
	}

	// Set up keyboard handlers for list
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'a' || event.Rune() == 'A' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Failures) {
					acknowledged[index] = !acknowledged[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
					if err := saveAcknowledged(); err != nil {
						_ = err
					}
				}
				return nil
			}
		}
		return event
	})

	// Set up keyboard handlers for details view
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	// Update details when list selection changes
	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	// Set initial details
	updateDetails()

	// Create main layout with title
	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	// Run the application
	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatFailureDetails formats a request failure for display using tview color tags ([red], [cyan], etc.)
func (ev *ErrorViewer) formatFailureDetails(failure domain.RequestFailure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	// Request header
	fmt.Fprintf(w, "[red]✗ Request %d[white]\n\n", failure.Index)

	// Classification
	fmt.Fprintf(w, "[cyan]Kind: %s[white]\n", failure.Kind)
	if failure.Status != "" {
		fmt.Fprintf(w, "[yellow]Service status: %s[white]\n", failure.Status)
	}
	fmt.Fprintf(w, "[yellow]Elapsed: %.2fs[white]\n\n", failure.ElapsedSeconds)

	// Expected vs observed output
	fmt.Fprintf(w, "[yellow]Expected output:[white]\n%q\n\n", failure.Expected)
	if failure.Kind == domain.KindMismatch || failure.Observed != "" {
		fmt.Fprintf(w, "[yellow]Observed output:[white]\n%q\n\n", failure.Observed)
	}

	// Error message
	if failure.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n", failure.Message)
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the stats header for a request failure
func (ev *ErrorViewer) formatFailureStats(failure domain.RequestFailure) string {
	var builder strings.Builder

	statsLine := fmt.Sprintf("[cyan]request:[white] [yellow]%d[white] [cyan]kind:[white] [yellow]%s[white] [cyan]time:[white] [yellow]%.2fs[white]",
		failure.Index, failure.Kind, failure.ElapsedSeconds)
	builder.WriteString(statsLine)
	builder.WriteString("\n")

	return builder.String()
}
