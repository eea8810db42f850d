package schema

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"mercator-hq/wclint/pkg/config"
	"mercator-hq/wclint/pkg/telemetry/metrics"
)

// Index is one immutable, fully built schema snapshot. Lookups fold tag
// names to lower case, matching HTML's case-insensitive tag matching.
type Index struct {
	byTag      map[string]*ElementDefinition
	tags       []string
	generation uint64
}

// Get returns the definition for a formatted tag name, or nil.
func (x *Index) Get(tag string) *ElementDefinition {
	if x == nil {
		return nil
	}
	return x.byTag[strings.ToLower(tag)]
}

// AllTags returns the indexed tag names in sorted order.
func (x *Index) AllTags() []string {
	if x == nil {
		return nil
	}
	return append([]string(nil), x.tags...)
}

// Count returns the number of element definitions in the index.
func (x *Index) Count() int {
	if x == nil {
		return 0
	}
	return len(x.byTag)
}

// Generation returns the index's publish generation. Generations increase
// monotonically across reloads.
func (x *Index) Generation() uint64 {
	if x == nil {
		return 0
	}
	return x.generation
}

// Loader builds and publishes schema indexes.
//
// Publication is atomic: a load cycle builds a complete new Index and swaps
// it in under the loader's mutex, then closes the cycle's gate channel.
// Readers that arrive while a cycle is in flight block on the gate, so they
// observe either the previous complete index (callers that already hold a
// snapshot) or the new one, never a partial map. WaitUntilLoaded resolves
// only after every source has been attempted, success or scoped failure.
type Loader struct {
	fetcher *Fetcher
	logger  *slog.Logger
	metrics *metrics.Metrics

	// loadMu serializes load cycles; a reload scheduled while one runs is
	// the scheduler's concern, not the loader's.
	loadMu sync.Mutex

	mu         sync.Mutex
	index      *Index
	gate       chan struct{}
	gateOpen   bool
	generation uint64
	disposed   bool
}

// NewLoader builds a Loader. The first call to Load publishes the first
// index; until then Get, AllTags, Count and WaitUntilLoaded block.
func NewLoader(fetcher *Fetcher, logger *slog.Logger, m *metrics.Metrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fetcher:  fetcher,
		logger:   logger.With("component", "schema.loader"),
		metrics:  m,
		gate:     make(chan struct{}),
		gateOpen: true,
	}
}

// Load runs one full load cycle against the given configuration snapshot:
// fetch and parse every source in declaration order, merge (later source
// wins on formatted-tag collision), publish atomically, release waiters.
// Per-source failures are logged and skipped; Load itself only fails when
// the loader is disposed.
func (l *Loader) Load(ctx context.Context, cfg *config.Resolved) {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	if !l.gateOpen {
		// A previous cycle already published; open a new gate so readers
		// arriving from here on wait for this cycle's index.
		l.gate = make(chan struct{})
		l.gateOpen = true
	}
	gate := l.gate
	l.generation++
	generation := l.generation
	l.mu.Unlock()

	start := time.Now()
	idx := l.build(ctx, cfg, generation)
	l.metrics.ObserveSchemaLoad(time.Since(start).Seconds(), idx.Count())

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		return
	}
	l.index = idx
	l.gateOpen = false
	close(gate)

	l.logger.Info("schema index published",
		"generation", generation,
		"elements", idx.Count(),
		"sources", len(cfg.Sources),
		"duration", time.Since(start),
	)
}

// build fetches, parses, and merges all sources into a fresh index.
func (l *Loader) build(ctx context.Context, cfg *config.Resolved, generation uint64) *Index {
	byTag := make(map[string]*ElementDefinition)

	for _, src := range cfg.Sources {
		payload, fromCache, err := l.fetcher.Fetch(ctx, src)
		if err != nil {
			l.metrics.CountSourceError()
			l.logger.Warn("schema source skipped", "error", err)
			continue
		}
		if fromCache {
			l.metrics.CountCacheFallback()
		}

		manifest, err := ParseManifest(payload)
		if err != nil {
			l.metrics.CountSourceError()
			l.logger.Warn("schema source skipped",
				"error", &SourceError{Library: src.Library, Src: src.Src, Err: err},
			)
			continue
		}

		scope := cfg.Library(src.Library)
		for _, def := range manifest.Elements(src.Library, scope) {
			key := strings.ToLower(def.Tag)
			if prev, ok := byTag[key]; ok {
				l.logger.Debug("tag collision, later source wins",
					"tag", def.Tag,
					"kept", def.Library,
					"replaced", prev.Library,
				)
			}
			byTag[key] = def
		}
	}

	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return &Index{byTag: byTag, tags: tags, generation: generation}
}

// WaitUntilLoaded blocks until the in-flight load cycle (or the very first
// load) publishes, or the context is cancelled.
func (l *Loader) WaitUntilLoaded(ctx context.Context) error {
	l.mu.Lock()
	gate := l.gate
	l.mu.Unlock()

	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current index, waiting out any in-flight cycle.
// Callers may keep using the returned index across later reloads; it is
// never mutated.
func (l *Loader) Snapshot(ctx context.Context) (*Index, error) {
	if err := l.WaitUntilLoaded(ctx); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index, nil
}

// Get returns the definition for a formatted tag name, waiting out any
// in-flight load. Absent tags return nil with no error.
func (l *Loader) Get(ctx context.Context, tag string) (*ElementDefinition, error) {
	idx, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Get(tag), nil
}

// AllTags returns every indexed tag name in sorted order.
func (l *Loader) AllTags(ctx context.Context) ([]string, error) {
	idx, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return idx.AllTags(), nil
}

// Count returns the number of indexed elements.
func (l *Loader) Count(ctx context.Context) (int, error) {
	idx, err := l.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return idx.Count(), nil
}

// Dispose releases any blocked waiters and marks the loader unusable.
// Waiters released by Dispose observe a nil index.
func (l *Loader) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		return
	}
	l.disposed = true
	if l.gateOpen {
		close(l.gate)
		l.gateOpen = false
	}
}
