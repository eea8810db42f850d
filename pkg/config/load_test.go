package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mercator-hq/wclint/pkg/diag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wclint.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
include:
  - "src/**/*.html"
typeSource: type
diagnosticSeverity:
  unknownElement: "off"
libraries:
  - name: ui-kit
    src: ./node_modules/ui-kit/custom-elements.json
    tagFormatter: "prefix:ui-"
schema:
  fetch_timeout: 5s
reload:
  debounce: 150ms
`)

	resolved, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := resolved.Root.SeverityFor(diag.RuleUnknownElement); got != diag.SeverityOff {
		t.Errorf("unknownElement severity = %s, want off", got)
	}
	if resolved.Root.TypeSource != TypeSourceType {
		t.Errorf("type source = %s, want type", resolved.Root.TypeSource)
	}
	if resolved.FetchTimeout != 5*time.Second {
		t.Errorf("fetch timeout = %s, want 5s", resolved.FetchTimeout)
	}
	if resolved.Debounce != 150*time.Millisecond {
		t.Errorf("debounce = %s, want 150ms", resolved.Debounce)
	}
	if len(resolved.Sources) != 1 || resolved.Sources[0].Library != "ui-kit" {
		t.Errorf("sources = %+v", resolved.Sources)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	resolved, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file error: %v", err)
	}
	if resolved.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("missing file must resolve to defaults, got %+v", resolved)
	}
}

func TestLoad_InvalidYAMLIsConfigError(t *testing.T) {
	path := writeConfig(t, "include: [unclosed")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WCLINT_DEBOUNCE", "1s")
	t.Setenv("WCLINT_CACHE_PATH", "/tmp/wclint-cache.db")

	path := writeConfig(t, "reload:\n  debounce: 150ms\n")

	resolved, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if resolved.Debounce != time.Second {
		t.Errorf("debounce = %s, want 1s from environment", resolved.Debounce)
	}
	if resolved.CachePath != "/tmp/wclint-cache.db" {
		t.Errorf("cache path = %q, want env override", resolved.CachePath)
	}
}
