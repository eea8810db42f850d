package report

import (
	"time"

	"mercator-hq/wclint/pkg/diag"
)

// Run summarizes one validation pass over a set of documents.
type Run struct {
	// ID uniquely identifies the run.
	ID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// CompletedAt is when the run finished.
	CompletedAt time.Time

	// Files is the number of documents validated.
	Files int

	// Errors, Warnings, Infos and Hints count findings by severity.
	Errors   int
	Warnings int
	Infos    int
	Hints    int
}

// Total returns the number of findings across all severities.
func (r *Run) Total() int {
	return r.Errors + r.Warnings + r.Infos + r.Hints
}

// FileResult holds the diagnostics produced for one document.
type FileResult struct {
	// URI identifies the document.
	URI string

	// Diagnostics are the findings reported for the document.
	Diagnostics diag.Diagnostics
}

// Finding is one persisted diagnostic, tied to its run and document.
type Finding struct {
	RunID     string
	URI       string
	Rule      diag.Rule
	Severity  diag.Severity
	Message   string
	Line      int
	Character int
}
