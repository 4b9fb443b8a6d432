package commands

import (
	"fmt"
	"strconv"

	"execbench/internal/config"
	"execbench/internal/history"
	"execbench/internal/ui"

	"github.com/spf13/cobra"
)

// RunsCommand handles the runs command
type RunsCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewRunsCommand creates a new RunsCommand
func NewRunsCommand(cfg *config.Config, formatter *ui.Formatter) *RunsCommand {
	return &RunsCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunsCommand) Execute(cmd *cobra.Command, args []string) error {
	store, err := history.Open(rc.config.GetHistoryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}

		run, err := store.GetRun(id)
		if err != nil {
			return err
		}
		records, err := store.Requests(id)
		if err != nil {
			return err
		}

		rc.formatter.PrintRunRequests(run, records)
		return nil
	}

	runs, err := store.ListRuns(rc.config.Flags.Limit)
	if err != nil {
		return err
	}

	rc.formatter.PrintRunsTable(runs)
	return nil
}
