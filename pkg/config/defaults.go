package config

import (
	"time"

	"mercator-hq/wclint/pkg/diag"
)

// Built-in operational defaults.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultDebounce     = 300 * time.Millisecond
)

// TypeSource selects which property of a manifest attribute entry is trusted
// for type information.
type TypeSource string

const (
	// TypeSourceType trusts the manifest's authored "type" field.
	TypeSourceType TypeSource = "type"

	// TypeSourceParsedType trusts the analyzer-derived "parsedType" field.
	TypeSourceParsedType TypeSource = "parsedType"
)

// DefaultTypeSource is used when neither root nor library configures one.
const DefaultTypeSource = TypeSourceParsedType

// DefaultSeverities returns the built-in severity for every rule. Callers
// receive a fresh map on each call; the package never hands out shared
// mutable state.
func DefaultSeverities() map[diag.Rule]diag.Severity {
	return map[diag.Rule]diag.Severity{
		diag.RuleUnknownElement:        diag.SeverityWarning,
		diag.RuleUnknownAttribute:      diag.SeverityWarning,
		diag.RuleInvalidBoolean:        diag.SeverityError,
		diag.RuleInvalidNumber:         diag.SeverityError,
		diag.RuleInvalidAttributeValue: diag.SeverityError,
		diag.RuleDeprecatedElement:     diag.SeverityWarning,
		diag.RuleDeprecatedAttribute:   diag.SeverityWarning,
		diag.RuleDuplicateAttribute:    diag.SeverityWarning,
	}
}

// Defaults returns the fully resolved configuration produced by an empty
// Raw: no libraries, built-in severities, identity formatting. This is the
// snapshot the engine falls back to after a ConfigError.
func Defaults() *Resolved {
	return &Resolved{
		Root: Effective{
			Severity:   DefaultSeverities(),
			TypeSource: DefaultTypeSource,
		},
		Libraries:    map[string]Effective{},
		Sources:      nil,
		FetchTimeout: DefaultFetchTimeout,
		Debounce:     DefaultDebounce,
	}
}
