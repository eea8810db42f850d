package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mercator-hq/wclint/pkg/diag"
)

// Recorder turns validation results into persisted runs.
type Recorder struct {
	store  *Store
	logger *slog.Logger
}

// NewRecorder creates a recorder over the given store.
func NewRecorder(store *Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:  store,
		logger: logger.With("component", "report.recorder"),
	}
}

// Record persists one validation run covering the given file results and
// returns its summary. startedAt marks when validation began; the
// completion time is taken now.
func (r *Recorder) Record(ctx context.Context, startedAt time.Time, results []FileResult) (*Run, error) {
	run := &Run{
		ID:          uuid.NewString(),
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
		Files:       len(results),
	}

	var findings []Finding
	for _, res := range results {
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case diag.SeverityError:
				run.Errors++
			case diag.SeverityWarning:
				run.Warnings++
			case diag.SeverityInfo:
				run.Infos++
			case diag.SeverityHint:
				run.Hints++
			}
			findings = append(findings, Finding{
				RunID:     run.ID,
				URI:       res.URI,
				Rule:      d.Rule,
				Severity:  d.Severity,
				Message:   d.Message,
				Line:      d.Range.Start.Line,
				Character: d.Range.Start.Character,
			})
		}
	}

	if err := r.store.SaveRun(ctx, run, findings); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	r.logger.Info("validation run recorded",
		"run_id", run.ID,
		"files", run.Files,
		"errors", run.Errors,
		"warnings", run.Warnings,
	)
	return run, nil
}
