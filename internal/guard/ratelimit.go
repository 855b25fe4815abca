// Package guard holds injected request guards for mutating endpoints. Each
// guard instance is constructed and wired explicitly — never a process-wide
// singleton — so tests and handlers control their own state.
package guard

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Result is the outcome of a guard evaluation.
type Result struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Guard   string `json:"guard,omitempty"` // which guard blocked
}

// RateLimiter implements a sliding window rate limiter. The withdrawal
// endpoint runs behind one because the monthly withdrawal ceiling is
// recomputed from lifetime accrued credits on every call: without external
// throttling a caller could take the ceiling repeatedly within one month.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	limit   int
	window  time.Duration
}

// NewRateLimiter creates a rate limiter with the given limit per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
	}
}

// Check returns a Result indicating whether the key is within rate limits.
func (rl *RateLimiter) Check(_ context.Context, key string) Result {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	// Remove expired entries
	entries := rl.windows[key]
	valid := entries[:0]
	for _, t := range entries {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.windows[key] = valid
		return Result{
			Allowed: false,
			Reason:  fmt.Sprintf("rate limit exceeded: %d/%s", rl.limit, rl.window),
			Guard:   "rate_limiter",
		}
	}

	rl.windows[key] = append(valid, now)
	return Result{Allowed: true}
}
