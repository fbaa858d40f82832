package stream

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-key connection-attempt quota in a fixed
// window. Entries are swept periodically so the map stays bounded under
// sustained distinct-key traffic.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string]rateEntry
	stop    chan struct{}
	once    sync.Once
}

type rateEntry struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		window:  window,
		max:     max,
		entries: map[string]rateEntry{},
		stop:    make(chan struct{}),
	}
}

// Allow records one attempt for key and reports whether it is within
// the quota for the current window.
func (r *RateLimiter) Allow(key string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok || now.After(entry.resetAt) {
		r.entries[key] = rateEntry{
			count:   1,
			resetAt: now.Add(r.window),
		}
		return true
	}
	if entry.count >= r.max {
		return false
	}
	entry.count++
	r.entries[key] = entry
	return true
}

// Window is the limiter's configured window, used for Retry-After
func (r *RateLimiter) Window() time.Duration {
	return r.window
}

// Start launches the background sweep that evicts expired entries
func (r *RateLimiter) Start() {
	go func() {
		ticker := time.NewTicker(r.window)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case now := <-ticker.C:
				r.sweep(now)
			}
		}
	}()
}

// Stop terminates the background sweep
func (r *RateLimiter) Stop() {
	r.once.Do(func() {
		close(r.stop)
	})
}

func (r *RateLimiter) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, entry := range r.entries {
		if !now.Before(entry.resetAt) {
			delete(r.entries, key)
		}
	}
}

// Len reports the number of tracked keys
func (r *RateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
