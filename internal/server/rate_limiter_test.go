package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// TestRateLimiter verifies burst consumption and refill over time.
func TestRateLimiter(t *testing.T) {
	req := require.New(t)
	clock := time.Unix(1_700_000_000, 0)
	rl := newRateLimiter(3, 3*time.Second)
	rl.now = func() time.Time { return clock }

	// The full burst is available immediately
	for i := 0; i < 3; i++ {
		req.True(rl.allow(), "token %d", i)
	}
	req.False(rl.allow())

	// One token per second comes back
	clock = clock.Add(time.Second)
	req.True(rl.allow())
	req.False(rl.allow())

	// Refill never exceeds capacity
	clock = clock.Add(time.Hour)
	for i := 0; i < 3; i++ {
		req.True(rl.allow())
	}
	req.False(rl.allow())
}

// TestRateLimiterDisabled verifies a disabled config yields a permissive nil limiter.
func TestRateLimiterDisabled(t *testing.T) {
	rl := newRateLimiterFromConfig(RateLimitConfig{Enabled: false, Burst: 1})
	require.Nil(t, rl)
	for i := 0; i < 100; i++ {
		require.True(t, rl.allow())
	}
}

// TestRateLimiterSanitizesInput falls back to one token per second.
func TestRateLimiterSanitizesInput(t *testing.T) {
	rl := newRateLimiter(0, 0)
	require.Equal(t, 1, rl.bucket.Burst())
	require.Equal(t, rate.Every(time.Second), rl.bucket.Limit())
}
