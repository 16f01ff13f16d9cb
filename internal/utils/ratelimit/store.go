package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCategory is used when a caller does not name a category.
const DefaultCategory = "default"

// maxIdle is how long an unused limiter is kept before cleanup drops it.
const maxIdle = 10 * time.Minute

// Store manages rate limiters for multiple clients and categories.
type Store struct {
	// limiters maps category and client identifiers to their limiters
	limiters map[string]*Limiter

	// rates defines different rate limits for different categories
	rates map[string]Rate

	mu  sync.RWMutex
	now Clock
}

// NewStore creates a store whose unnamed categories use defaultRate.
func NewStore(defaultRate Rate) *Store {
	return &Store{
		limiters: make(map[string]*Limiter),
		rates:    map[string]Rate{DefaultCategory: defaultRate},
		now:      time.Now,
	}
}

// GetLimiter returns the limiter for clientID within category, creating it on
// first use.
//
// Parameters:
//   - clientID: The unique identifier for the client (user ID or remote IP)
//   - category: The rate category, e.g. "export"
//
// Returns:
//   - A rate limiter for the client
func (s *Store) GetLimiter(clientID string, category string) *Limiter {
	key := category + "|" + clientID

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have created it while we waited
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	rate, ok := s.rates[category]
	if !ok {
		rate = s.rates[DefaultCategory]
	}

	limiter = newLimiterWithClock(rate.RequestsPerSecond, rate.Burst, s.now)
	s.limiters[key] = limiter
	return limiter
}

// SetRate sets a rate limit for a specific category.
// Limiters that already exist keep their previous rate.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Len returns the number of tracked limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Run removes idle limiters every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup drops limiters that have not been consulted for maxIdle.
func (s *Store) cleanup() {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, limiter := range s.limiters {
		if limiter.idleSince().Before(cutoff) {
			delete(s.limiters, key)
			removed++
		}
	}

	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", len(s.limiters)).Msg("Idle rate limiters removed")
	}
}
