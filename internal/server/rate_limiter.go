// Package server throttles inbound frames per connection with a token bucket
// so one chatty peer cannot flood the hub.
package server

import (
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter wraps a token bucket. A nil *rateLimiter allows everything.
type rateLimiter struct {
	bucket *rate.Limiter
	now    func() time.Time
}

// newRateLimiter allows burst frames at once, refilled evenly over interval.
func newRateLimiter(burst int, interval time.Duration) *rateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if interval <= 0 {
		interval = time.Second
	}

	return &rateLimiter{
		bucket: rate.NewLimiter(rate.Every(interval/time.Duration(burst)), burst),
		now:    time.Now,
	}
}

// newRateLimiterFromConfig returns nil when limiting is disabled.
func newRateLimiterFromConfig(cfg RateLimitConfig) *rateLimiter {
	if !cfg.Enabled {
		return nil
	}
	return newRateLimiter(cfg.Burst, cfg.RefillInterval)
}

// allow consumes one token.
func (rl *rateLimiter) allow() bool {
	if rl == nil {
		return true
	}
	return rl.bucket.AllowN(rl.now(), 1)
}
