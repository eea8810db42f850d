package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML configuration file, applies WCLINT_* environment
// overrides, and resolves it. A missing file is not an error: it resolves to
// Defaults(), since projects without a config file are validated under
// built-in settings.
//
// Shape violations (bad YAML, unknown severity levels, malformed globs)
// are returned as a *ConfigError wrapped with file context; callers surface
// it once and continue with Defaults().
func Load(path string) (*Resolved, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var raw Raw
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Errors: []FieldError{{
			Field:   path,
			Message: fmt.Sprintf("invalid YAML: %v", err),
		}}}
	}

	applyEnvOverrides(&raw)

	resolved, err := Resolve(&raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return resolved, nil
}

// applyEnvOverrides applies WCLINT_* environment variables to operational
// knobs. Environment always takes precedence over the file.
func applyEnvOverrides(raw *Raw) {
	if val := os.Getenv("WCLINT_FETCH_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			raw.Schema.FetchTimeout = Duration(d)
		}
	}
	if val := os.Getenv("WCLINT_CACHE_PATH"); val != "" {
		raw.Schema.CachePath = val
	}
	if val := os.Getenv("WCLINT_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			raw.Reload.Debounce = Duration(d)
		}
	}
	if val := os.Getenv("WCLINT_REPORT_PATH"); val != "" {
		raw.Report.Path = val
	}
}
