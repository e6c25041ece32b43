package corpus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const sampleJSON = `[
  {"word":"好","oldword":"好","strokes":"6","pinyin":"hǎo","radicals":"女","explanation":"优点多","more":""},
  {"word":"木","oldword":"木","strokes":"4","pinyin":"mù","radicals":"木","explanation":"树木","more":""},
  {"word":"好","oldword":"好","strokes":"6","pinyin":"hào","radicals":"女","explanation":"duplicate","more":""}
]`

type countingSource struct {
	calls   atomic.Int32
	records []hanzi.Character
	err     error
	delay   time.Duration
}

func (s *countingSource) Fetch(ctx context.Context) ([]hanzi.Character, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func TestLoadDedupesAndCaches(t *testing.T) {
	src := &countingSource{records: []hanzi.Character{{Word: "好"}, {Word: "木"}, {Word: "好", Pinyin: "dup"}}}
	l := NewLoader(src)

	first := l.Load(context.Background())
	second := l.Load(context.Background())

	require.Len(t, first, 2)
	assert.Equal(t, "", first[0].Pinyin)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.True(t, l.Loaded())
}

func TestLoadFailureReturnsEmptyAndIsNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("network down")}
	l := NewLoader(src)

	got := l.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.False(t, l.Loaded())

	src.err = nil
	src.records = []hanzi.Character{{Word: "木"}}
	got = l.Load(context.Background())
	assert.Len(t, got, 1)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestConcurrentFirstLoadSharesOneFetch(t *testing.T) {
	src := &countingSource{records: []hanzi.Character{{Word: "木"}}, delay: 50 * time.Millisecond}
	l := NewLoader(src)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, l.Load(context.Background()), 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestHTTPSource(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	l := NewLoader(NewHTTPSource(srv.URL))
	got := l.Load(context.Background())
	l.Load(context.Background())

	require.Len(t, got, 2)
	assert.Equal(t, "好", got[0].Word)
	assert.Equal(t, "hǎo", got[0].Pinyin)
	assert.Equal(t, "树木", got[1].Explanation)
	assert.Equal(t, int32(1), hits.Load())
}

func TestHTTPSourceBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "R2 bucket not configured", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestHTTPSourceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPSourceLimiterHonorsContext(t *testing.T) {
	src := NewHTTPSource("http://127.0.0.1:1", WithLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))
	src.limiter.Allow() // drain the only token

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := src.Fetch(ctx)
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "word.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	records, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	assert.Error(t, err)
}

func TestSourceFunc(t *testing.T) {
	src := SourceFunc(func(context.Context) ([]hanzi.Character, error) {
		return []hanzi.Character{{Word: "水"}}, nil
	})
	got := NewLoader(src).Load(context.Background())
	assert.Equal(t, "水", got[0].Word)
}
