package corpus

import (
	"context"
	"sync"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Loader fetches the corpus once, dedupes it by character and caches it.
// Only successful fetches are cached; a failed fetch is retried on the
// next call. Concurrent first calls share a single in-flight fetch.
type Loader struct {
	source Source

	mu      sync.RWMutex
	records []hanzi.Character
	loaded  bool

	flight singleflight.Group
}

// NewLoader creates a Loader over source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load returns the corpus. On failure it logs and returns an empty slice;
// callers can't tell that apart from a genuinely empty corpus.
func (l *Loader) Load(ctx context.Context) []hanzi.Character {
	records, err := l.Fetch(ctx)
	if err != nil {
		logging.Error("Failed to load character corpus", "error", err)
		return []hanzi.Character{}
	}
	return records
}

// Fetch is Load with the error surfaced, for callers that must not cache
// a failure themselves.
func (l *Loader) Fetch(ctx context.Context) ([]hanzi.Character, error) {
	if records, ok := l.cached(); ok {
		return records, nil
	}

	v, err, _ := l.flight.Do("corpus", func() (interface{}, error) {
		if records, ok := l.cached(); ok {
			return records, nil
		}

		raw, err := l.source.Fetch(ctx)
		if err != nil {
			return nil, err
		}

		records := hanzi.Dedupe(raw)
		l.mu.Lock()
		l.records = records
		l.loaded = true
		l.mu.Unlock()

		logging.Info("Character corpus loaded", "raw", len(raw), "unique", len(records))
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]hanzi.Character), nil
}

// Loaded reports whether a successful fetch has been cached.
func (l *Loader) Loaded() bool {
	_, ok := l.cached()
	return ok
}

func (l *Loader) cached() ([]hanzi.Character, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.records, l.loaded
}
