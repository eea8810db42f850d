package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes YAML scalars in either Go
// duration syntax ("150ms", "10s") or integer nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Raw is the on-disk configuration shape before defaulting, validation, and
// per-library resolution. All fields are optional.
type Raw struct {
	// Include is the set of glob patterns selecting documents to validate.
	// Empty means every document.
	Include []string `yaml:"include"`

	// Exclude removes documents matched by Include.
	Exclude []string `yaml:"exclude"`

	// TagFormatter is a formatter spec applied to raw manifest tag names
	// before they enter the schema index. See CompileFormatter for the
	// spec grammar. Empty means identity.
	TagFormatter string `yaml:"tagFormatter"`

	// TypeSource selects which property of a manifest attribute entry is
	// trusted for type information: "type" or "parsedType".
	TypeSource string `yaml:"typeSource"`

	// DiagnosticSeverity maps rule names to severity levels. A rule set to
	// "off" is not evaluated at all.
	DiagnosticSeverity map[string]string `yaml:"diagnosticSeverity"`

	// Libraries declares the schema sources in order. Later declarations
	// win on formatted-tag collisions.
	Libraries []RawLibrary `yaml:"libraries"`

	// Schema holds loader and cache settings.
	Schema RawSchema `yaml:"schema"`

	// Reload holds reload scheduler settings.
	Reload RawReload `yaml:"reload"`

	// Report holds validation run reporting settings.
	Report RawReport `yaml:"report"`
}

// RawLibrary is one library declaration: a schema source plus its overrides.
type RawLibrary struct {
	// Name identifies the library; severity overrides for elements owned
	// by this library resolve through it.
	Name string `yaml:"name"`

	// Src is the manifest location: a local path or an http(s) URL.
	Src string `yaml:"src"`

	// TagFormatter overrides the root formatter for this library.
	TagFormatter string `yaml:"tagFormatter"`

	// TypeSource overrides the root type source for this library.
	TypeSource string `yaml:"typeSource"`

	// DiagnosticSeverity overrides individual rule severities, key by key.
	DiagnosticSeverity map[string]string `yaml:"diagnosticSeverity"`

	// Include and Exclude, when set, replace the root patterns for
	// documents validated against this library.
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// RawSchema holds schema loader settings.
type RawSchema struct {
	// FetchTimeout bounds each remote manifest fetch. Default: 10s.
	FetchTimeout Duration `yaml:"fetch_timeout"`

	// CachePath is the SQLite file caching remote manifest payloads for
	// offline fallback. Empty disables the cache.
	CachePath string `yaml:"cache_path"`

	// RefreshSchedule is a cron expression for periodic re-fetch of remote
	// sources. Empty disables periodic refresh.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// RawReload holds reload scheduler settings.
type RawReload struct {
	// Debounce is the quiet window collapsing repeated schedule calls.
	// Default: 300ms.
	Debounce Duration `yaml:"debounce"`
}

// RawReport holds validation run reporting settings.
type RawReport struct {
	// Path is the SQLite file recording validation runs. Empty disables
	// reporting.
	Path string `yaml:"path"`
}
