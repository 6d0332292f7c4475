package ingest

import (
	"log/slog"
	"time"
)

// RateLimiter paces outbound source requests to at most quota requests per
// window. State is owned by a single ingestion instance; the ingestion path is
// single-threaded so no locking is needed.
type RateLimiter struct {
	interval time.Duration
	last     time.Time
}

// NewRateLimiter spaces calls window/quota apart. quota <= 0 disables pacing.
func NewRateLimiter(window time.Duration, quota int) *RateLimiter {
	var interval time.Duration
	if quota > 0 {
		interval = window / time.Duration(quota)
	}
	return &RateLimiter{interval: interval}
}

// Wait blocks until at least one interval has elapsed since the previous Wait
// returned. The first call never waits. Wait cannot fail, only delay.
func (r *RateLimiter) Wait() {
	if !r.last.IsZero() {
		if elapsed := time.Since(r.last); elapsed < r.interval {
			wait := r.interval - elapsed
			slog.Debug("[RateLimiter] throttling request", slog.Duration("wait", wait))
			time.Sleep(wait)
		}
	}
	r.last = time.Now()
}
