// Package report persists validation run results to a SQLite database so
// that lint runs can be audited and compared over time.
//
// A run groups the findings of one validation pass over a set of files.
// Each run gets a unique identifier and per-severity totals; individual
// findings carry the rule, message, and source position they were
// reported at.
package report
