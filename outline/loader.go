package outline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gogpu/particles"
)

// ErrUnsupportedScheme is returned for font URLs that are neither file paths
// nor file, http or https URLs.
var ErrUnsupportedScheme = errors.New("outline: unsupported URL scheme")

// maxFontSize bounds how much a fetch reads.
const maxFontSize = 32 << 20

// Fetcher retrieves raw font data for a URL.
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFetcher replaces the data source. Defaults to Fetch.
func WithFetcher(fetch Fetcher) LoaderOption {
	return func(l *Loader) {
		l.fetch = fetch
	}
}

// WithFontOptions passes options to Parse for every loaded font.
func WithFontOptions(opts ...Option) LoaderOption {
	return func(l *Loader) {
		l.fontOpts = append(l.fontOpts, opts...)
	}
}

// call is one in-flight or completed load.
type call struct {
	done chan struct{}
	font *Font
	err  error
}

// Loader fetches and parses fonts, at most once per URL.
//
// Concurrent Load calls for the same URL share one fetch. A successful
// result is kept for the lifetime of the Loader; a failure is forgotten so
// the next Load tries again.
type Loader struct {
	fetch    Fetcher
	fontOpts []Option

	mu    sync.Mutex
	calls map[string]*call

	fetches atomic.Int64
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fetch: Fetch,
		calls: make(map[string]*call),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the font at url, fetching it on first use.
//
// Cancelling ctx abandons the wait but not the fetch: other callers and later
// calls still receive its result.
func (l *Loader) Load(ctx context.Context, url string) (*Font, error) {
	l.mu.Lock()
	c, ok := l.calls[url]
	if !ok {
		c = &call{done: make(chan struct{})}
		l.calls[url] = c
		l.fetches.Add(1)
		go l.run(context.WithoutCancel(ctx), url, c)
	}
	l.mu.Unlock()

	select {
	case <-c.done:
		return c.font, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cached returns the font for url if it has already loaded successfully.
func (l *Loader) Cached(url string) (*Font, bool) {
	l.mu.Lock()
	c, ok := l.calls[url]
	l.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case <-c.done:
		return c.font, c.err == nil
	default:
		return nil, false
	}
}

// Fetches returns how many fetches the Loader has started.
func (l *Loader) Fetches() int64 {
	return l.fetches.Load()
}

func (l *Loader) run(ctx context.Context, url string, c *call) {
	log := particles.Logger()

	data, err := l.fetch(ctx, url)
	if err == nil {
		c.font, err = Parse(data, l.fontOpts...)
	}
	if err != nil {
		var fe *FontError
		if !errors.As(err, &fe) {
			err = &FontError{Op: "load", URL: url, Err: err}
		} else if fe.URL == "" {
			fe.URL = url
		}
		c.font = nil
		c.err = err

		l.mu.Lock()
		if l.calls[url] == c {
			delete(l.calls, url)
		}
		l.mu.Unlock()
		log.Error("font load failed", "url", url, "err", err)
	} else {
		log.Debug("font loaded", "url", url, "family", c.font.Name(), "bytes", len(data))
	}
	close(c.done)
}

// Fetch reads font data from a file path, a file:// URL or an http(s) URL.
func Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return os.ReadFile(rawURL)
	}
	switch u.Scheme {
	case "file":
		return os.ReadFile(u.Path)
	case "http", "https":
		return fetchHTTP(ctx, u.String())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func fetchHTTP(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxFontSize))
}

var defaultLoader = NewLoader()

// Default returns the process-wide Loader used by Load.
func Default() *Loader {
	return defaultLoader
}

// Load loads a font through the process-wide Loader.
func Load(ctx context.Context, url string) (*Font, error) {
	return defaultLoader.Load(ctx, url)
}
