package validate

import (
	"context"
	"log/slog"
	"time"

	"mercator-hq/wclint/pkg/config"
	"mercator-hq/wclint/pkg/diag"
	"mercator-hq/wclint/pkg/markup"
	"mercator-hq/wclint/pkg/schema"
	"mercator-hq/wclint/pkg/telemetry/metrics"
)

// Engine evaluates documents against a schema index under a resolved
// configuration snapshot. Engines are cheap and hold no per-document state;
// concurrent ProvideDiagnostics calls for different documents are
// independent.
type Engine struct {
	cfg     *config.Resolved
	loader  *schema.Loader
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewEngine builds an Engine over a configuration snapshot and loader.
// logger and m may be nil.
func NewEngine(cfg *config.Resolved, loader *schema.Loader, logger *slog.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:     cfg,
		loader:  loader,
		logger:  logger.With("component", "validate.engine"),
		metrics: m,
	}
}

// ProvideDiagnostics validates one document and returns the surviving
// diagnostics in document order. It blocks only while a schema load is in
// flight; the returned error is non-nil only when the context is cancelled
// during that wait. Validation itself never fails the caller: a document
// with nothing to report yields an empty list.
func (e *Engine) ProvideDiagnostics(ctx context.Context, doc *markup.Document) (diag.Diagnostics, error) {
	idx, err := e.loader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	nodes := markup.ScanTags(doc)
	suppressions := ScanSuppressions(doc, nodes)

	var out diag.Diagnostics
	for _, node := range nodes {
		for _, d := range e.checkElement(idx, doc, node) {
			if suppressions.IsSuppressed(d.Rule, d.Range) {
				e.metrics.CountSuppressed()
				continue
			}
			e.metrics.CountDiagnostic(string(d.Rule), string(d.Severity))
			out = append(out, d)
		}
	}

	e.metrics.ObserveValidation(time.Since(start).Seconds())
	e.logger.Debug("document validated",
		"uri", doc.URI,
		"elements", len(nodes),
		"diagnostics", len(out),
		"schema_generation", idx.Generation(),
	)
	return out, nil
}

// MatchesPath reports whether the engine's root scope selects the document
// path for validation.
func (e *Engine) MatchesPath(path string) bool {
	return e.cfg.Root.MatchesPath(path)
}
