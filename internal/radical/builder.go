package radical

import (
	"context"
	"fmt"
	"sync"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/logging"
	"github.com/f3rmion/bushou/internal/oracle"
	"golang.org/x/sync/singleflight"
)

// Corpus supplies the records to index. corpus.Loader satisfies it.
type Corpus interface {
	Fetch(ctx context.Context) ([]hanzi.Character, error)
}

// Builder builds the Index once per corpus and caches it. Concurrent first
// uses share one build; a failed corpus fetch is not cached.
type Builder struct {
	corpus Corpus
	oracle oracle.Oracle

	mu    sync.RWMutex
	index *Index

	flight singleflight.Group
}

// NewBuilder creates a Builder.
func NewBuilder(c Corpus, o oracle.Oracle) *Builder {
	return &Builder{corpus: c, oracle: oracle.Guard(o)}
}

// Build returns the memoized index, building it on first use.
func (b *Builder) Build(ctx context.Context) (*Index, error) {
	if idx := b.cached(); idx != nil {
		return idx, nil
	}

	v, err, _ := b.flight.Do("index", func() (interface{}, error) {
		if idx := b.cached(); idx != nil {
			return idx, nil
		}

		records, err := b.corpus.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading corpus for radical index: %w", err)
		}

		idx := BuildIndex(records, b.oracle)
		b.mu.Lock()
		b.index = idx
		b.mu.Unlock()

		logging.Info("Radical index built", "characters", len(records), "radicals", idx.Len())
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

// AllRadicals returns the collated radical list of the memoized index.
func (b *Builder) AllRadicals(ctx context.Context) ([]string, error) {
	idx, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Radicals(), nil
}

// Search builds the index if needed and queries it.
func (b *Builder) Search(ctx context.Context, radicals []string, mode hanzi.Mode) ([]hanzi.Character, error) {
	if len(radicals) == 0 {
		return []hanzi.Character{}, nil
	}
	idx, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Search(radicals, mode), nil
}

func (b *Builder) cached() *Index {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index
}
