package execution

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"execbench/internal/domain"
	"execbench/internal/protocol"
)

// Runner executes a single logical request end to end
type Runner struct {
	client *Client
	opts   protocol.Options
}

// NewRunner creates a new Runner
func NewRunner(client *Client, opts protocol.Options) *Runner {
	return &Runner{client: client, opts: opts}
}

// Run builds, sends and verifies one request. The message and the expected
// stdout are both the decimal form of the request index, so every request
// independently proves the service echoed the right payload.
func (r *Runner) Run(ctx context.Context, idx int) domain.Outcome {
	msg := strconv.Itoa(idx)
	req := protocol.NewEchoRequest(msg, r.opts)

	start := time.Now()
	resp, err := r.client.Execute(ctx, req)

	outcome := domain.Outcome{
		Index:    idx,
		Expected: msg,
		Elapsed:  time.Since(start),
	}

	if err != nil {
		outcome.Kind = domain.KindTransport
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			outcome.Kind = reqErr.Kind
			outcome.Status = reqErr.Status
		}
		outcome.Err = err
		return outcome
	}

	outcome.Status = resp.Status
	outcome.Observed = resp.Stdout()
	if !Verify(outcome.Expected, outcome.Observed) {
		outcome.Kind = domain.KindMismatch
		outcome.Err = fmt.Errorf("output %q, expected %q", outcome.Observed, outcome.Expected)
		return outcome
	}

	outcome.OK = true
	return outcome
}
