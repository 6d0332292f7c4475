package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_FirstCallNeverWaits(t *testing.T) {
	limiter := NewRateLimiter(time.Hour, 1)

	start := time.Now()
	limiter.Wait()
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestRateLimiter_SpacesCalls(t *testing.T) {
	// 100ms window, quota 2 -> 50ms between calls.
	limiter := NewRateLimiter(100*time.Millisecond, 2)

	limiter.Wait()
	start := time.Now()
	limiter.Wait()
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}

func TestRateLimiter_ZeroQuotaDisablesPacing(t *testing.T) {
	limiter := NewRateLimiter(time.Hour, 0)

	start := time.Now()
	limiter.Wait()
	limiter.Wait()
	limiter.Wait()
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
