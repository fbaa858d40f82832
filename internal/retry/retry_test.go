package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Policy{Attempts: 3, InitialDelay: time.Millisecond}.Do(context.Background(), "ok", func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Policy{Attempts: 3, InitialDelay: time.Millisecond}.Do(context.Background(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDoExhaustionReturnsLastError(t *testing.T) {
	calls := 0
	last := errors.New("attempt 3 failed")
	err := Policy{Attempts: 3, InitialDelay: time.Millisecond}.Do(context.Background(), "broken", func() error {
		calls++
		if calls == 3 {
			return last
		}
		return errors.New("earlier failure")
	})
	if calls != 3 {
		t.Fatalf("expected exactly 3 calls, got %d", calls)
	}
	if !errors.Is(err, last) {
		t.Fatalf("expected last error, got: %v", err)
	}
}

func TestDoDelayDoubles(t *testing.T) {
	var stamps []time.Time
	_ = Policy{Attempts: 3, InitialDelay: 20 * time.Millisecond}.Do(context.Background(), "timing", func() error {
		stamps = append(stamps, time.Now())
		return errors.New("always fails")
	})
	if len(stamps) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(stamps))
	}

	first := stamps[1].Sub(stamps[0])
	second := stamps[2].Sub(stamps[1])
	if first < 20*time.Millisecond {
		t.Fatalf("first delay too short: %v", first)
	}
	if second < 40*time.Millisecond {
		t.Fatalf("second delay did not double: %v", second)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	errCh := make(chan error, 1)
	go func() {
		errCh <- Policy{Attempts: 5, InitialDelay: time.Hour}.Do(ctx, "cancelled", func() error {
			calls++
			return errors.New("fail")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestDoZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Policy{}.Do(context.Background(), "degenerate", func() error {
		calls++
		return errors.New("fail")
	})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}
