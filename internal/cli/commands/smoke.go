package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"execbench/internal/config"
	"execbench/internal/execution"
	"execbench/internal/protocol"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SmokeCommand handles the smoke command
type SmokeCommand struct {
	config *config.Config
}

// NewSmokeCommand creates a new SmokeCommand
func NewSmokeCommand(cfg *config.Config) *SmokeCommand {
	return &SmokeCommand{config: cfg}
}

// Execute runs the command
func (sc *SmokeCommand) Execute(cmd *cobra.Command, args []string) error {
	message := sc.config.Flags.Message
	if message == "" {
		message = config.DefaultSmokeMessage
	}

	client := execution.NewClient(sc.config.Endpoint, sc.config.HTTPTimeout, 1)
	req := protocol.NewEchoLineRequest(message, protocol.Options{
		RuntimeName:    sc.config.RuntimeName,
		RuntimeVersion: sc.config.RuntimeVersion,
		ExecTime:       sc.config.ExecTime,
		AllowRead:      true,
	})

	start := time.Now()
	resp, err := client.Execute(context.Background(), req)
	elapsed := time.Since(start)

	if err != nil {
		var reqErr *execution.RequestError
		if errors.As(err, &reqErr) && reqErr.Status != "" {
			return fmt.Errorf("request failed after %.2fs with status %q", elapsed.Seconds(), reqErr.Status)
		}
		return fmt.Errorf("request failed after %.2fs: %w", elapsed.Seconds(), err)
	}

	color.Green("Request was successful (%.2fs). Output: %s", elapsed.Seconds(), resp.Stdout())
	return nil
}
