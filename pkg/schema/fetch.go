package schema

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"mercator-hq/wclint/pkg/config"
	"mercator-hq/wclint/pkg/schema/cache"
)

// SourceError is a fetch or parse failure scoped to one schema source. It is
// logged and the source contributes nothing; other sources still load.
type SourceError struct {
	Library string
	Src     string
	Err     error
}

// Error returns the formatted source error.
func (e *SourceError) Error() string {
	return fmt.Sprintf("schema source %q (%s): %v", e.Library, e.Src, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves raw manifest payloads from local paths or http(s) URLs.
// Remote fetches are bounded by the configured timeout and pass through the
// optional cache: successful payloads are stored, and a failed re-fetch
// falls back to the cached copy when one exists.
type Fetcher struct {
	client *http.Client
	store  *cache.Store
	logger *slog.Logger
}

// NewFetcher builds a Fetcher. store may be nil to disable caching; a nil
// logger falls back to slog.Default.
func NewFetcher(timeout time.Duration, store *cache.Store, logger *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = config.DefaultFetchTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		store:  store,
		logger: logger.With("component", "schema.fetcher"),
	}
}

// Fetch retrieves the payload for one source. fromCache reports whether the
// payload came from the fallback cache rather than a live fetch.
func (f *Fetcher) Fetch(ctx context.Context, src config.Source) (payload []byte, fromCache bool, err error) {
	if isRemote(src.Src) {
		return f.fetchRemote(ctx, src)
	}

	data, err := os.ReadFile(src.Src)
	if err != nil {
		return nil, false, &SourceError{Library: src.Library, Src: src.Src, Err: err}
	}
	return data, false, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, src config.Source) ([]byte, bool, error) {
	data, err := f.get(ctx, src.Src)
	if err == nil {
		if f.store != nil {
			if cerr := f.store.Put(ctx, src.Src, data); cerr != nil {
				f.logger.Warn("failed to cache manifest payload",
					"src", src.Src,
					"error", cerr,
				)
			}
		}
		return data, false, nil
	}

	if f.store != nil {
		cached, fetchedAt, ok, cerr := f.store.Get(ctx, src.Src)
		if cerr != nil {
			f.logger.Warn("cache lookup failed", "src", src.Src, "error", cerr)
		} else if ok {
			f.logger.Warn("remote fetch failed, using cached manifest",
				"library", src.Library,
				"src", src.Src,
				"fetched_at", fetchedAt,
				"error", err,
			)
			return cached, true, nil
		}
	}
	return nil, false, &SourceError{Library: src.Library, Src: src.Src, Err: err}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
