package diag

import (
	"fmt"

	"mercator-hq/wclint/pkg/markup"
)

// Severity is the reporting level of a diagnostic. SeverityOff is a
// configuration value only: a rule set to off is never evaluated, so no
// Diagnostic ever carries it.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
	SeverityOff     Severity = "off"
)

// Valid reports whether s is one of the five known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo, SeverityHint, SeverityOff:
		return true
	}
	return false
}

// Rule identifies one validation rule.
type Rule string

const (
	RuleUnknownElement        Rule = "unknownElement"
	RuleUnknownAttribute      Rule = "unknownAttribute"
	RuleInvalidBoolean        Rule = "invalidBoolean"
	RuleInvalidNumber         Rule = "invalidNumber"
	RuleInvalidAttributeValue Rule = "invalidAttributeValue"
	RuleDeprecatedElement     Rule = "deprecatedElement"
	RuleDeprecatedAttribute   Rule = "deprecatedAttribute"
	RuleDuplicateAttribute    Rule = "duplicateAttribute"

	// RuleInvalidConfig marks a configuration-file failure. It is not an
	// engine rule: it cannot be suppressed or severity-mapped, and it is
	// always reported at error severity.
	RuleInvalidConfig Rule = "invalidConfig"
)

// AllRules lists every rule the engine evaluates.
var AllRules = []Rule{
	RuleUnknownElement,
	RuleUnknownAttribute,
	RuleInvalidBoolean,
	RuleInvalidNumber,
	RuleInvalidAttributeValue,
	RuleDeprecatedElement,
	RuleDeprecatedAttribute,
	RuleDuplicateAttribute,
}

// Known reports whether r is one of the engine's rules.
func (r Rule) Known() bool {
	for _, known := range AllRules {
		if r == known {
			return true
		}
	}
	return false
}

// Diagnostic is one finding against a document. It is created by a rule
// evaluation, possibly dropped by the suppression resolver, and otherwise
// returned to the caller.
type Diagnostic struct {
	Rule     Rule
	Message  string
	Severity Severity
	Range    markup.Range
}

// String formats the diagnostic for logs and CLI output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s [%s] %s", d.Range.Start, d.Severity, d.Rule, d.Message)
}

// Diagnostics is an ordered collection of findings.
type Diagnostics []Diagnostic

// Count returns the number of diagnostics at the given severity.
func (ds Diagnostics) Count(sev Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any diagnostic is at error severity.
func (ds Diagnostics) HasErrors() bool {
	return ds.Count(SeverityError) > 0
}
