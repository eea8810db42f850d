// Package diag defines the diagnostic vocabulary shared by the validation
// engine and its callers: rule identifiers, severity levels (including
// "off", which disables a rule's evaluation entirely), and the Diagnostic
// record with its source range.
package diag
