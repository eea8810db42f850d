package config

import (
	"time"

	"mercator-hq/wclint/pkg/diag"
)

// Effective is the resolved configuration for one scope (root or a single
// library). Snapshots are built once per resolve and must not be mutated by
// callers; a new Resolve call fully replaces them.
type Effective struct {
	// Include and Exclude select the documents this scope validates.
	Include []string
	Exclude []string

	// Severity holds the fully merged severity for every rule.
	Severity map[diag.Rule]diag.Severity

	// TagFormatter transforms raw manifest tag names before indexing.
	TagFormatter Formatter

	// TypeSource selects the trusted type property for attribute entries.
	TypeSource TypeSource
}

// SeverityFor returns the effective severity of a rule, falling back to the
// built-in default for rules absent from the merged map.
func (e *Effective) SeverityFor(rule diag.Rule) diag.Severity {
	if sev, ok := e.Severity[rule]; ok {
		return sev
	}
	return DefaultSeverities()[rule]
}

// MatchesPath reports whether a document path is selected by this scope's
// include/exclude patterns. An empty include list selects everything.
func (e *Effective) MatchesPath(p string) bool {
	included := len(e.Include) == 0
	for _, pattern := range e.Include {
		if Match(pattern, p) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, pattern := range e.Exclude {
		if Match(pattern, p) {
			return false
		}
	}
	return true
}

// Source is one schema source derived from a library declaration, in
// declaration order.
type Source struct {
	// Library is the owning library's name.
	Library string

	// Src is the manifest location: local path or http(s) URL.
	Src string
}

// Resolved is a full configuration snapshot: the root scope, one Effective
// per library, the ordered schema sources, and operational settings.
// Snapshots are immutable; reloading publishes a new one wholesale.
type Resolved struct {
	Root      Effective
	Libraries map[string]Effective

	// Sources lists schema sources in declaration order. On formatted-tag
	// collision during index merge, the later source wins.
	Sources []Source

	FetchTimeout    time.Duration
	CachePath       string
	RefreshSchedule string
	Debounce        time.Duration
	ReportPath      string
}

// Library returns the Effective scope for a library, falling back to the
// root scope for unknown names.
func (r *Resolved) Library(name string) *Effective {
	if eff, ok := r.Libraries[name]; ok {
		return &eff
	}
	return &r.Root
}

// Resolve validates a raw configuration and resolves it into a snapshot.
// A nil raw yields Defaults(). On a shape violation it returns a
// *ConfigError and no snapshot; the caller decides whether to continue with
// Defaults().
func Resolve(raw *Raw) (*Resolved, error) {
	if raw == nil {
		return Defaults(), nil
	}
	if cerr := validateRaw(raw); cerr != nil {
		return nil, cerr
	}

	root := Effective{
		Include:    append([]string(nil), raw.Include...),
		Exclude:    append([]string(nil), raw.Exclude...),
		Severity:   mergeSeverities(DefaultSeverities(), raw.DiagnosticSeverity),
		TypeSource: DefaultTypeSource,
	}
	// Validated above, so compilation cannot fail here.
	root.TagFormatter, _ = CompileFormatter(raw.TagFormatter)
	if raw.TypeSource != "" {
		root.TypeSource = TypeSource(raw.TypeSource)
	}

	resolved := &Resolved{
		Root:            root,
		Libraries:       make(map[string]Effective, len(raw.Libraries)),
		FetchTimeout:    time.Duration(raw.Schema.FetchTimeout),
		CachePath:       raw.Schema.CachePath,
		RefreshSchedule: raw.Schema.RefreshSchedule,
		Debounce:        time.Duration(raw.Reload.Debounce),
		ReportPath:      raw.Report.Path,
	}
	if resolved.FetchTimeout == 0 {
		resolved.FetchTimeout = DefaultFetchTimeout
	}
	if resolved.Debounce == 0 {
		resolved.Debounce = DefaultDebounce
	}

	for _, lib := range raw.Libraries {
		eff := Effective{
			Include:      root.Include,
			Exclude:      root.Exclude,
			Severity:     mergeSeverities(root.Severity, lib.DiagnosticSeverity),
			TagFormatter: root.TagFormatter,
			TypeSource:   root.TypeSource,
		}
		if lib.Include != nil {
			eff.Include = append([]string(nil), lib.Include...)
		}
		if lib.Exclude != nil {
			eff.Exclude = append([]string(nil), lib.Exclude...)
		}
		if lib.TagFormatter != "" {
			eff.TagFormatter, _ = CompileFormatter(lib.TagFormatter)
		}
		if lib.TypeSource != "" {
			eff.TypeSource = TypeSource(lib.TypeSource)
		}
		resolved.Libraries[lib.Name] = eff
		resolved.Sources = append(resolved.Sources, Source{Library: lib.Name, Src: lib.Src})
	}

	return resolved, nil
}

// mergeSeverities copies base and overlays overrides key by key. Unknown
// rule names in overrides are carried but never consulted by the engine.
func mergeSeverities(base map[diag.Rule]diag.Severity, overrides map[string]string) map[diag.Rule]diag.Severity {
	merged := make(map[diag.Rule]diag.Severity, len(base)+len(overrides))
	for rule, sev := range base {
		merged[rule] = sev
	}
	for rule, sev := range overrides {
		merged[diag.Rule(rule)] = diag.Severity(sev)
	}
	return merged
}
