// Package config loads and resolves wclint configuration.
//
// Configuration is read from a YAML file (conventionally wclint.yaml) and
// resolved into immutable Effective snapshots: one for the root scope and one
// per declared library. Resolution layers three tiers, lowest precedence
// first: built-in defaults, the root configuration, then the library's own
// overrides. Severity maps merge key by key (last write wins per rule);
// tag formatter and type source follow simple three-tier precedence.
//
// A shape violation produces a *ConfigError rather than a crash. Callers are
// expected to surface it as a single user-visible diagnostic and continue
// with Defaults().
//
// Example configuration:
//
//	include:
//	  - "src/**/*.html"
//	exclude:
//	  - "**/dist/**"
//	typeSource: parsedType
//	diagnosticSeverity:
//	  unknownAttribute: hint
//	libraries:
//	  - name: ui-kit
//	    src: ./node_modules/ui-kit/custom-elements.json
//	    tagFormatter: "prefix:ui-"
//	    diagnosticSeverity:
//	      deprecatedAttribute: error
//	  - name: design-system
//	    src: https://cdn.example.com/ds/custom-elements.json
//
// Library declaration order matters: when two libraries map a raw tag to the
// same formatted name, the later declaration wins in the schema index.
package config
