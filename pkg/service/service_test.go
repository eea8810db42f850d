package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mercator-hq/wclint/pkg/diag"
	"mercator-hq/wclint/pkg/report"
)

const badgeManifest = `{
  "schemaVersion": "1.0.0",
  "modules": [
    {
      "path": "src/my-badge.ts",
      "declarations": [
        {
          "kind": "class",
          "customElement": true,
          "tagName": "my-badge",
          "name": "MyBadge",
          "attributes": [
            {
              "name": "size",
              "parsedType": {"text": "'small' | 'large'"}
            },
            {
              "name": "disabled",
              "parsedType": {"text": "boolean"}
            }
          ]
        }
      ]
    }
  ]
}`

// writeFixture writes a manifest and a config referencing it, returning
// the config path.
func writeFixture(t *testing.T, extraCfg string) string {
	t.Helper()
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "custom-elements.json")
	if err := os.WriteFile(manifestPath, []byte(badgeManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := fmt.Sprintf("libraries:\n  - name: badges\n    src: %s\n%s", manifestPath, extraCfg)
	cfgPath := filepath.Join(dir, "wclint.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func startService(t *testing.T, opts Options) *Service {
	t.Helper()
	svc, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := svc.Start(context.Background()); err != nil {
		svc.Close()
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestServiceValidatesAgainstLoadedSchema(t *testing.T) {
	cfgPath := writeFixture(t, "")
	svc := startService(t, Options{ConfigPath: cfgPath})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	diags, err := svc.ProvideDiagnostics(ctx, "file:///index.html",
		`<my-badge size="huge"></my-badge>`)
	if err != nil {
		t.Fatalf("ProvideDiagnostics: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Rule != diag.RuleInvalidAttributeValue {
		t.Fatalf("rule = %s, want %s", diags[0].Rule, diag.RuleInvalidAttributeValue)
	}

	if err := svc.ConfigError(); err != nil {
		t.Fatalf("unexpected config error: %v", err)
	}
}

func TestServiceTagLookups(t *testing.T) {
	cfgPath := writeFixture(t, "")
	svc := startService(t, Options{ConfigPath: cfgPath})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tags, err := svc.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 1 || tags[0] != "my-badge" {
		t.Fatalf("Tags = %v, want [my-badge]", tags)
	}

	def, err := svc.Tag(ctx, "my-badge")
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if def == nil || def.Library != "badges" {
		t.Fatalf("Tag(my-badge) = %+v", def)
	}
}

func TestServiceBrokenConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "wclint.yaml")
	if err := os.WriteFile(cfgPath, []byte("libraries:\n  - name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := startService(t, Options{ConfigPath: cfgPath})

	if svc.ConfigError() == nil {
		t.Fatal("expected a config error for library without src")
	}
	cd := svc.ConfigDiagnostic()
	if cd == nil || cd.Rule != diag.RuleInvalidConfig || cd.Severity != diag.SeverityError {
		t.Fatalf("ConfigDiagnostic = %+v", cd)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Defaults carry no sources; validation still works with an empty index.
	diags, err := svc.ProvideDiagnostics(ctx, "file:///index.html",
		`<my-badge size="huge"></my-badge>`)
	if err != nil {
		t.Fatalf("ProvideDiagnostics: %v", err)
	}
	if len(diags) != 1 || diags[0].Rule != diag.RuleUnknownElement {
		t.Fatalf("got %v, want one unknownElement", diags)
	}
}

func TestServiceReloadPicksUpConfigChange(t *testing.T) {
	cfgPath := writeFixture(t, "reload:\n  debounce: 20ms\n")
	svc := startService(t, Options{ConfigPath: cfgPath})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := svc.Tags(ctx); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	// Silence the unknown-element rule and reload.
	updated := fmt.Sprintf("diagnosticSeverity:\n  unknownElement: off\nreload:\n  debounce: 20ms\nlibraries:\n  - name: badges\n    src: %s\n",
		filepath.Join(filepath.Dir(cfgPath), "custom-elements.json"))
	if err := os.WriteFile(cfgPath, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	svc.Reload()

	deadline := time.Now().Add(5 * time.Second)
	for {
		diags, err := svc.ProvideDiagnostics(ctx, "file:///index.html", `<my-card></my-card>`)
		if err != nil {
			t.Fatalf("ProvideDiagnostics: %v", err)
		}
		if len(diags) == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reload never took effect, still reporting %v", diags)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestServiceWatcherTriggersReload(t *testing.T) {
	cfgPath := writeFixture(t, "reload:\n  debounce: 20ms\n")
	svc := startService(t, Options{ConfigPath: cfgPath, Watch: true})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := svc.Tags(ctx); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	// Rewrite the config so the watcher schedules a reload.
	updated := "diagnosticSeverity:\n  unknownElement: off\nreload:\n  debounce: 20ms\n"
	if err := os.WriteFile(cfgPath, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		diags, err := svc.ProvideDiagnostics(ctx, "file:///index.html", `<my-card></my-card>`)
		if err != nil {
			t.Fatalf("ProvideDiagnostics: %v", err)
		}
		if len(diags) == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("watcher reload never took effect, still reporting %v", diags)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestServiceRecordsRuns(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.db")
	cfgPath := writeFixture(t, fmt.Sprintf("report:\n  path: %s\n", reportPath))

	svc := startService(t, Options{ConfigPath: cfgPath, Report: true})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	diags, err := svc.ProvideDiagnostics(ctx, "file:///index.html", `<my-badge size="huge">`)
	if err != nil {
		t.Fatalf("ProvideDiagnostics: %v", err)
	}

	run, err := svc.Record(ctx, time.Now(), []report.FileResult{
		{URI: "file:///index.html", Diagnostics: diags},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if run == nil || run.Total() != len(diags) {
		t.Fatalf("run = %+v, want %d findings", run, len(diags))
	}
}

func TestServiceRecordDisabled(t *testing.T) {
	cfgPath := writeFixture(t, "")
	svc := startService(t, Options{ConfigPath: cfgPath})

	run, err := svc.Record(context.Background(), time.Now(), nil)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if run != nil {
		t.Fatalf("expected nil run when reporting disabled, got %+v", run)
	}
}

func TestServiceMatchesPath(t *testing.T) {
	cfgPath := writeFixture(t, "include:\n  - \"**/*.html\"\nexclude:\n  - \"**/vendor/**\"\n")
	svc := startService(t, Options{ConfigPath: cfgPath})

	if !svc.MatchesPath("app/index.html") {
		t.Fatal("expected app/index.html to match")
	}
	if svc.MatchesPath("app/vendor/widget.html") {
		t.Fatal("expected vendored path to be excluded")
	}
	if svc.MatchesPath("app/main.ts") {
		t.Fatal("expected non-html path to be excluded")
	}
}
