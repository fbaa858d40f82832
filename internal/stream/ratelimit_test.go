package stream

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimiterQuota(t *testing.T) {
	limiter := NewRateLimiter(10, time.Minute)
	now := time.Now()

	for i := 0; i < 10; i++ {
		if !limiter.Allow("1.2.3.4", now) {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4", now) {
		t.Fatal("11th attempt in the window should be rejected")
	}
}

func TestRateLimiterWindowRollover(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	now := time.Now()

	limiter.Allow("k", now)
	limiter.Allow("k", now)
	if limiter.Allow("k", now) {
		t.Fatal("expected rejection within window")
	}

	later := now.Add(time.Minute + time.Second)
	if !limiter.Allow("k", later) {
		t.Fatal("expected fresh quota after window rollover")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	now := time.Now()

	if !limiter.Allow("a", now) {
		t.Fatal("first key should be allowed")
	}
	if !limiter.Allow("b", now) {
		t.Fatal("second key should be unaffected by the first")
	}
	if limiter.Allow("a", now) {
		t.Fatal("first key should be exhausted")
	}
}

func TestRateLimiterSweepEvictsExpired(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)
	now := time.Now()

	for i := 0; i < 100; i++ {
		limiter.Allow(fmt.Sprintf("ip-%d", i), now)
	}
	if limiter.Len() != 100 {
		t.Fatalf("expected 100 tracked keys, got %d", limiter.Len())
	}

	limiter.sweep(now.Add(2 * time.Minute))
	if limiter.Len() != 0 {
		t.Fatalf("expected sweep to evict every expired key, %d left", limiter.Len())
	}
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	limiter := NewRateLimiter(5, time.Millisecond)
	limiter.Start()
	limiter.Stop()
	limiter.Stop()
}
