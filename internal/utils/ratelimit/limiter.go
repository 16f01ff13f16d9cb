// Package ratelimit throttles expensive endpoints such as document export.
// It implements the token bucket algorithm keyed by client identity.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Limiter is a token bucket for a single client.
type Limiter struct {
	// tokens is the current number of tokens in the bucket
	tokens float64

	// lastTime is the last time tokens were added to the bucket
	lastTime time.Time

	// lastSeen is the last time the limiter was consulted
	lastSeen time.Time

	// rate is the token refill rate (tokens per second)
	rate float64

	// capacity is the maximum number of tokens the bucket can hold
	capacity float64

	now Clock
	mu  sync.Mutex
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// NewLimiter creates a full bucket refilling at rate tokens per second.
func NewLimiter(rate float64, burst int) *Limiter {
	return newLimiterWithClock(rate, burst, time.Now)
}

func newLimiterWithClock(rate float64, burst int, now Clock) *Limiter {
	t := now()
	return &Limiter{
		tokens:   float64(burst),
		lastTime: t,
		lastSeen: t,
		rate:     rate,
		capacity: float64(burst),
		now:      now,
	}
}

// Allow reports whether a request may proceed, consuming a token if so.
func (l *Limiter) Allow() bool {
	ok, _ := l.Reserve()
	return ok
}

// Reserve consumes a token when one is available. When the bucket is empty it
// returns false together with the wait until the next token arrives.
//
// Returns:
//   - true and zero if the request is allowed
//   - false and the retry delay if the rate limit has been exceeded
func (l *Limiter) Reserve() (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.refill(now)
	l.lastSeen = now

	if l.tokens >= 1 {
		l.tokens--
		return true, 0
	}

	if l.rate <= 0 {
		return false, time.Duration(math.MaxInt64)
	}

	missing := 1 - l.tokens
	wait := time.Duration(missing / l.rate * float64(time.Second))
	return false, wait
}

func (l *Limiter) refill(now time.Time) {
	elapsed := now.Sub(l.lastTime).Seconds()
	l.lastTime = now
	if elapsed <= 0 {
		return
	}

	l.tokens += elapsed * l.rate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
}

func (l *Limiter) idleSince() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSeen
}
