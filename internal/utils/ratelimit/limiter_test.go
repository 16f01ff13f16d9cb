package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNewLimiter(t *testing.T) {
	limiter := NewLimiter(10, 5)

	require.NotNil(t, limiter)
	assert.Equal(t, float64(10), limiter.rate)
	assert.Equal(t, float64(5), limiter.capacity)
	assert.Equal(t, float64(5), limiter.tokens)
	assert.NotZero(t, limiter.lastTime)
}

func TestLimiter_Allow(t *testing.T) {
	t.Run("Burst is available immediately", func(t *testing.T) {
		clock := newFakeClock()
		limiter := newLimiterWithClock(10, 5, clock.Now)

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow(), "Expected request %d to be allowed", i+1)
		}
		assert.False(t, limiter.Allow(), "Expected 6th request to be denied")
	})

	t.Run("Tokens refill over time", func(t *testing.T) {
		clock := newFakeClock()
		limiter := newLimiterWithClock(10, 1, clock.Now)

		assert.True(t, limiter.Allow())
		assert.False(t, limiter.Allow())

		clock.Advance(100 * time.Millisecond)
		assert.True(t, limiter.Allow())
	})

	t.Run("Tokens are capped at capacity", func(t *testing.T) {
		clock := newFakeClock()
		limiter := newLimiterWithClock(10, 3, clock.Now)

		for i := 0; i < 3; i++ {
			limiter.Allow()
		}
		clock.Advance(time.Hour)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow())
		}
		assert.False(t, limiter.Allow())
	})

	t.Run("Zero burst never allows", func(t *testing.T) {
		limiter := newLimiterWithClock(10, 0, newFakeClock().Now)

		assert.False(t, limiter.Allow())
	})
}

func TestLimiter_Reserve(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiterWithClock(2, 1, clock.Now)

	ok, wait := limiter.Reserve()
	assert.True(t, ok)
	assert.Zero(t, wait)

	ok, wait = limiter.Reserve()
	assert.False(t, ok)
	assert.Equal(t, 500*time.Millisecond, wait)

	clock.Advance(250 * time.Millisecond)
	ok, wait = limiter.Reserve()
	assert.False(t, ok)
	assert.Equal(t, 250*time.Millisecond, wait)
}

func TestLimiter_Reserve_ZeroRate(t *testing.T) {
	limiter := newLimiterWithClock(0, 1, newFakeClock().Now)

	limiter.Allow()
	ok, wait := limiter.Reserve()

	assert.False(t, ok)
	assert.Greater(t, wait, 24*time.Hour)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := newLimiterWithClock(0, 50, newFakeClock().Now)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
