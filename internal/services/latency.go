package service

import (
	"context"
	"time"
)

// simulateLatency blocks for the configured mock-network delay. The wait is
// context-aware so an abandoned request does not pin the handler, but the
// operation itself cannot fail or time out.
func simulateLatency(ctx context.Context, d time.Duration) {

	if d <= 0 {
		return
	}

	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
