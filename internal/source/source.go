// Package source expands a source specifier into batches of raw log lines.
// A specifier is either an http(s) URL or a doublestar glob pattern.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/bitfield/script"
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultHTTPTimeout bounds a URL fetch when no client is configured
const DefaultHTTPTimeout = 30 * time.Second

// ErrNoMatches is returned when a glob pattern matches no regular file
var ErrNoMatches = errors.New("no files match pattern")

// SourceError reports a source that could not be read at all
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Batch holds the lines of one file or URL, in order
type Batch struct {
	Source string
	Lines  []string
}

// Reader resolves specifiers and reads their lines
type Reader struct {
	client  *http.Client
	workers int
	logger  *zap.Logger
}

// Option configures a Reader
type Option func(*Reader)

// WithHTTPClient sets the client used for URL sources
func WithHTTPClient(c *http.Client) Option {
	return func(r *Reader) {
		if c != nil {
			r.client = c
		}
	}
}

// WithWorkers bounds the number of files read concurrently. Values below 1
// keep the default of GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger for per-file warnings
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewReader creates a Reader
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		client:  &http.Client{Timeout: DefaultHTTPTimeout},
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsURL reports whether src names an http or https resource
func IsURL(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Read returns the lines behind src. A URL yields one batch. A glob yields
// one batch per matched file in sorted path order; a file that fails to read
// is logged and yields an empty batch.
func (r *Reader) Read(ctx context.Context, src string) ([]Batch, error) {
	if IsURL(src) {
		lines, err := r.fetch(ctx, src)
		if err != nil {
			return nil, &SourceError{Source: src, Err: err}
		}
		return []Batch{{Source: src, Lines: lines}}, nil
	}

	paths, err := r.glob(src)
	if err != nil {
		return nil, &SourceError{Source: src, Err: err}
	}
	r.logger.Debug("glob expanded", zap.String("pattern", src), zap.Int("files", len(paths)))

	batches := make([]Batch, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			batches[i] = Batch{Source: path, Lines: r.readFile(path)}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, &SourceError{Source: src, Err: err}
	}
	return batches, nil
}

func (r *Reader) fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("fetching url", zap.String("url", url))
	return script.NewPipe().WithHTTPClient(r.client).Do(req).Slice()
}

func (r *Reader) glob(pattern string) ([]string, error) {
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, ErrNoMatches
	}
	for i, p := range paths {
		paths[i] = filepath.Clean(p)
	}
	// FilepathGlob returns matches in directory walk order
	slices.Sort(paths)
	return paths, nil
}

func (r *Reader) readFile(path string) []string {
	lines, err := script.File(path).Slice()
	if err != nil {
		r.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
		return []string{}
	}
	return lines
}
