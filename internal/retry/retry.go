package retry

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/logger"
)

// Default policy applied to persistence writes and marketplace reads.
const (
	DefaultAttempts     = 3
	DefaultInitialDelay = time.Second
)

// Policy is a bounded exponential-backoff retry policy without jitter.
// The delay doubles after every failed attempt: initialDelay, 2x, 4x...
type Policy struct {
	Attempts     int
	InitialDelay time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Attempts: DefaultAttempts, InitialDelay: DefaultInitialDelay}
}

// Do invokes op up to p.Attempts times total. Between failures it waits
// the current backoff delay, honoring ctx cancellation during the wait.
// On exhaustion the last error is returned to the caller.
func (p Policy) Do(ctx context.Context, name string, op func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.InitialDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		logger.Warn("Operation failed, retrying",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(lastErr),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return lastErr
}

// Do runs op with the default policy
func Do(ctx context.Context, name string, op func() error) error {
	return DefaultPolicy().Do(ctx, name, op)
}
