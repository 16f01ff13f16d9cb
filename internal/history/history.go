// Package history keeps a capped, newest-first log of export attempts on top
// of a single-key persistence port.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/productforge/backend/internal/models"
)

// DefaultCapacity is the number of entries a log keeps unless configured otherwise.
const DefaultCapacity = 50

// BaseKey is the storage key of the anonymous owner's history. Named owners
// are stored under BaseKey + ":" + owner.
const BaseKey = "exportHistory"

// KV persists one opaque value per key.
type KV interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}

// Store records and lists export attempts.
type Store interface {
	Append(ctx context.Context, entry models.ExportHistoryEntry) error
	List(ctx context.Context) ([]models.ExportHistoryEntry, error)
}

// Log is a Store that keeps its whole sequence as one JSON array under a KV key.
type Log struct {
	kv       KV
	key      string
	capacity int
	mu       *sync.Mutex
}

// NewLog creates a log stored under key. A capacity below one selects DefaultCapacity.
func NewLog(kv KV, key string, capacity int) *Log {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Log{kv: kv, key: key, capacity: capacity, mu: &sync.Mutex{}}
}

// Key returns the storage key of the log.
func (l *Log) Key() string { return l.key }

// Append prepends entry and drops everything beyond the log's capacity.
// A stored value that cannot be decoded is replaced by a fresh sequence.
func (l *Log) Append(ctx context.Context, entry models.ExportHistoryEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read(ctx)
	if err != nil {
		return err
	}

	next := make([]models.ExportHistoryEntry, 0, min(len(entries)+1, l.capacity))
	next = append(next, entry)
	next = append(next, entries...)
	if len(next) > l.capacity {
		next = next[:l.capacity]
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode export history: %w", err)
	}
	if err := l.kv.Put(ctx, l.key, data); err != nil {
		return fmt.Errorf("write export history: %w", err)
	}
	return nil
}

// List returns the entries newest first. Absent or undecodable history reads
// as an empty sequence; only storage failures are returned as errors.
func (l *Log) List(ctx context.Context) ([]models.ExportHistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.read(ctx)
}

func (l *Log) read(ctx context.Context) ([]models.ExportHistoryEntry, error) {
	data, err := l.kv.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("read export history: %w", err)
	}

	entries := []models.ExportHistoryEntry{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().
			Err(err).
			Str("key", l.key).
			Msg("Discarding unreadable export history")
		return []models.ExportHistoryEntry{}, nil
	}
	// A stored JSON null decodes to a nil slice
	if entries == nil {
		entries = []models.ExportHistoryEntry{}
	}
	return entries, nil
}

// Book hands out per-owner logs over one KV. All logs from the same book share
// a lock, so concurrent appends inside one process never lose entries.
type Book struct {
	kv       KV
	capacity int
	mu       sync.Mutex
}

// NewBook creates a book whose logs keep at most capacity entries.
func NewBook(kv KV, capacity int) *Book {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Book{kv: kv, capacity: capacity}
}

// For returns the log of owner. An empty owner selects the anonymous history.
func (b *Book) For(owner string) *Log {
	return &Log{kv: b.kv, key: KeyFor(owner), capacity: b.capacity, mu: &b.mu}
}

// Capacity returns the number of entries each log keeps.
func (b *Book) Capacity() int { return b.capacity }

// KeyFor returns the storage key of owner's history.
func KeyFor(owner string) string {
	if owner == "" {
		return BaseKey
	}
	return BaseKey + ":" + owner
}
