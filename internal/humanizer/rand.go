package humanizer

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the random source the probabilistic stages draw from.
type Rand interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
	// Intn returns a number in [0, n). n is always positive.
	Intn(n int) int
}

// lockedRand serializes access to a *rand.Rand, which is not safe for concurrent use.
type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

// NewSeededRand returns a goroutine-safe source with a fixed seed.
// Two sources with the same seed produce the same sequence.
func NewSeededRand(seed int64) Rand {
	return &lockedRand{src: rand.New(rand.NewSource(seed))}
}

var (
	defaultRand     Rand
	defaultRandOnce sync.Once
)

// DefaultRand returns the process-wide source, seeded from the clock on first use.
func DefaultRand() Rand {
	defaultRandOnce.Do(func() {
		defaultRand = NewSeededRand(time.Now().UnixNano())
	})
	return defaultRand
}
