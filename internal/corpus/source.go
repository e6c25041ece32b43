// Package corpus fetches the character corpus and memoizes it for the process lifetime.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/f3rmion/bushou/internal/hanzi"
	"golang.org/x/time/rate"
)

// ErrBadStatus is returned when the corpus endpoint answers with a non-2xx status.
var ErrBadStatus = errors.New("unexpected corpus response status")

// Source fetches the complete raw record set in one call.
type Source interface {
	Fetch(ctx context.Context) ([]hanzi.Character, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]hanzi.Character, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) ([]hanzi.Character, error) {
	return f(ctx)
}

// HTTPSource downloads the corpus as a single JSON array.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.httpClient = c }
}

// WithLimiter overrides the attempt limiter.
func WithLimiter(l *rate.Limiter) HTTPOption {
	return func(s *HTTPSource) { s.limiter = l }
}

// NewHTTPSource creates a source for url. By default attempts are limited
// to one every two seconds so that repeated toggles after a failed fetch
// don't hammer the endpoint.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads and decodes the corpus.
func (s *HTTPSource) Fetch(ctx context.Context) ([]hanzi.Character, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for fetch slot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	return decode(resp.Body)
}

// FileSource reads the corpus from a local JSON file.
type FileSource struct {
	path string
}

// NewFileSource creates a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]hanzi.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	return decode(f)
}

func decode(r io.Reader) ([]hanzi.Character, error) {
	var records []hanzi.Character
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding corpus: %w", err)
	}
	return records, nil
}
