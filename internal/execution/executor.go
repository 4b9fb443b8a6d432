package execution

import (
	"context"
	"time"

	"execbench/internal/domain"
)

// Executor dispatches a batch of requests and returns their outcomes
type Executor interface {
	Execute(ctx context.Context, requests int) ([]domain.Outcome, time.Duration, error)
}
