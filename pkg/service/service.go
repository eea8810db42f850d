package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mercator-hq/wclint/pkg/config"
	"mercator-hq/wclint/pkg/diag"
	"mercator-hq/wclint/pkg/markup"
	"mercator-hq/wclint/pkg/reload"
	"mercator-hq/wclint/pkg/report"
	"mercator-hq/wclint/pkg/schema"
	"mercator-hq/wclint/pkg/schema/cache"
	"mercator-hq/wclint/pkg/telemetry/metrics"
	"mercator-hq/wclint/pkg/validate"
)

// Options configures a Service.
type Options struct {
	// ConfigPath is the configuration file location. A missing file is not
	// an error; built-in defaults apply.
	ConfigPath string

	// Logger receives structured log records. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional Prometheus instrumentation.
	Metrics *metrics.Metrics

	// Watch enables the filesystem watcher over the configuration file and
	// local manifest sources.
	Watch bool

	// Report enables run recording when the configuration names a report
	// database path.
	Report bool
}

// Service composes the validation engine with configuration and schema
// lifecycle management.
type Service struct {
	configPath string
	logger     *slog.Logger
	metrics    *metrics.Metrics

	store     *cache.Store
	loader    *schema.Loader
	scheduler *reload.Scheduler
	watcher   *reload.Watcher
	refresher *reload.Refresher

	reportStore *report.Store
	recorder    *report.Recorder

	mu     sync.RWMutex
	cfg    *config.Resolved
	cfgErr error
	engine *validate.Engine

	cancel  context.CancelFunc
	started bool
	closed  bool
}

// New builds a Service from opts. The schema index is not loaded yet;
// call Start to begin the first load cycle.
func New(opts Options) (*Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		configPath: opts.ConfigPath,
		logger:     logger.With("component", "service"),
		metrics:    opts.Metrics,
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.Error("configuration invalid, using defaults", "path", opts.ConfigPath, "error", err)
		s.cfgErr = err
		cfg = config.Defaults()
	}
	s.cfg = cfg

	if cfg.CachePath != "" {
		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open manifest cache: %w", err)
		}
		s.store = store
	}

	fetcher := schema.NewFetcher(cfg.FetchTimeout, s.store, logger)
	s.loader = schema.NewLoader(fetcher, logger, opts.Metrics)
	s.engine = validate.NewEngine(cfg, s.loader, logger, opts.Metrics)
	s.scheduler = reload.NewScheduler(cfg.Debounce, s.runReload, logger)

	if opts.Report && cfg.ReportPath != "" {
		rs, err := report.OpenStore(cfg.ReportPath, logger)
		if err != nil {
			s.closeStores()
			return nil, fmt.Errorf("failed to open report store: %w", err)
		}
		s.reportStore = rs
		s.recorder = report.NewRecorder(rs, logger)
	}

	if opts.Watch {
		paths := watchPaths(opts.ConfigPath, cfg)
		w, err := reload.NewWatcher(paths, s.scheduler, logger)
		if err != nil {
			s.closeStores()
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
		s.watcher = w
	}

	if cfg.RefreshSchedule != "" && hasRemoteSources(cfg) {
		s.refresher = reload.NewRefresher(cfg.RefreshSchedule, s.scheduler, logger)
	}

	return s, nil
}

// Start launches the first schema load and the background reload triggers.
// Lookups and validation block until that first load publishes.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("service already started")
	}
	s.started = true
	cfg := s.cfg
	s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)

	go s.loader.Load(ctx, cfg)

	if s.watcher != nil {
		go func() {
			if err := s.watcher.Watch(ctx); err != nil {
				s.logger.Error("file watcher terminated", "error", err)
			}
		}()
	}

	if s.refresher != nil {
		if err := s.refresher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start periodic refresh: %w", err)
		}
	}

	return nil
}

// runReload is one full reload cycle: re-resolve configuration, swap the
// engine, rebuild and publish the schema index.
func (s *Service) runReload(reason string) {
	s.logger.Info("reloading", "reason", reason)

	cfg, err := config.Load(s.configPath)
	if err != nil {
		s.logger.Error("configuration invalid, keeping defaults", "path", s.configPath, "error", err)
		cfg = config.Defaults()
	}

	s.mu.Lock()
	s.cfg = cfg
	s.cfgErr = err
	s.engine = validate.NewEngine(cfg, s.loader, s.logger, s.metrics)
	s.mu.Unlock()

	s.loader.Load(context.Background(), cfg)
	s.metrics.CountReload()
}

// ProvideDiagnostics validates one document against the current schema
// index and configuration. It blocks until the first schema load has
// published.
func (s *Service) ProvideDiagnostics(ctx context.Context, uri, text string) (diag.Diagnostics, error) {
	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()

	return engine.ProvideDiagnostics(ctx, markup.NewDocument(uri, text))
}

// MatchesPath reports whether the root include and exclude globs select
// the given path for validation.
func (s *Service) MatchesPath(path string) bool {
	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()
	return engine.MatchesPath(path)
}

// Tags returns every indexed tag name in sorted order.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	return s.loader.AllTags(ctx)
}

// Tag returns the element definition for a formatted tag name, or nil.
func (s *Service) Tag(ctx context.Context, name string) (*schema.ElementDefinition, error) {
	return s.loader.Get(ctx, name)
}

// Config returns the current resolved configuration snapshot.
func (s *Service) Config() *config.Resolved {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// ConfigError returns the error from the most recent configuration load,
// or nil. The service keeps running on defaults while it is non-nil.
func (s *Service) ConfigError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfgErr
}

// ConfigDiagnostic renders the current configuration failure as one
// file-level diagnostic anchored at the top of the configuration file,
// or nil when the configuration is healthy. Editor hosts attach it to
// the config document so the failure is visible exactly once.
func (s *Service) ConfigDiagnostic() *diag.Diagnostic {
	err := s.ConfigError()
	if err == nil {
		return nil
	}
	return &diag.Diagnostic{
		Rule:     diag.RuleInvalidConfig,
		Message:  err.Error(),
		Severity: diag.SeverityError,
	}
}

// OnFileChanged schedules a reload for an externally observed change, for
// example an editor save notification.
func (s *Service) OnFileChanged(path string) {
	s.scheduler.Schedule("file changed: " + path)
}

// Reload schedules an immediate reload cycle, subject to debouncing.
func (s *Service) Reload() {
	s.scheduler.Schedule("manual reload")
}

// Record persists a validation run. It is a no-op returning a nil run
// when run recording is not enabled.
func (s *Service) Record(ctx context.Context, startedAt time.Time, results []report.FileResult) (*report.Run, error) {
	if s.recorder == nil {
		return nil, nil
	}
	return s.recorder.Record(ctx, startedAt, results)
}

// Close stops background triggers, releases blocked waiters, and closes
// the underlying stores.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.scheduler.Stop()
	if s.refresher != nil {
		s.refresher.Stop()
	}
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("failed to stop watcher", "error", err)
		}
	}
	s.loader.Dispose()
	return s.closeStores()
}

func (s *Service) closeStores() error {
	var firstErr error
	if s.store != nil {
		if err := s.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.reportStore != nil {
		if err := s.reportStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// watchPaths collects the files whose changes should trigger a reload:
// the configuration file and every local manifest source. Remote sources
// are covered by the periodic refresher instead.
func watchPaths(configPath string, cfg *config.Resolved) []string {
	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	}
	for _, src := range cfg.Sources {
		if !isRemoteSrc(src.Src) {
			paths = append(paths, src.Src)
		}
	}
	return paths
}

func hasRemoteSources(cfg *config.Resolved) bool {
	for _, src := range cfg.Sources {
		if isRemoteSrc(src.Src) {
			return true
		}
	}
	return false
}

func isRemoteSrc(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
