package config

import (
	"fmt"
	"strings"

	"mercator-hq/wclint/pkg/diag"
)

// FieldError is a shape violation at one configuration field.
type FieldError struct {
	// Field is the dotted path to the offending field, e.g.
	// "libraries[0].diagnosticSeverity.unknownAttribute".
	Field string

	// Message is a human-readable description of the violation.
	Message string
}

// Error returns the formatted field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigError reports one or more shape violations in a raw configuration.
// It is fatal to config loading only: the caller surfaces it as a single
// user-visible diagnostic and proceeds with Defaults().
type ConfigError struct {
	Errors []FieldError
}

// Error returns all field errors formatted as a single string.
func (e *ConfigError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid configuration: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid configuration (%d problems):", len(e.Errors))
	for _, fe := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(fe.Error())
	}
	return sb.String()
}

// validateRaw collects every shape violation in raw. It returns nil when the
// configuration is well formed.
func validateRaw(raw *Raw) *ConfigError {
	var errs []FieldError

	errs = append(errs, validateGlobs("include", raw.Include)...)
	errs = append(errs, validateGlobs("exclude", raw.Exclude)...)
	errs = append(errs, validateSeverityMap("diagnosticSeverity", raw.DiagnosticSeverity)...)
	errs = append(errs, validateFormatterSpec("tagFormatter", raw.TagFormatter)...)
	errs = append(errs, validateTypeSource("typeSource", raw.TypeSource)...)

	seen := map[string]bool{}
	for i, lib := range raw.Libraries {
		prefix := fmt.Sprintf("libraries[%d]", i)
		if lib.Name == "" {
			errs = append(errs, FieldError{Field: prefix + ".name", Message: "library name is required"})
		} else if seen[lib.Name] {
			errs = append(errs, FieldError{Field: prefix + ".name", Message: fmt.Sprintf("duplicate library name %q", lib.Name)})
		}
		seen[lib.Name] = true
		if lib.Src == "" {
			errs = append(errs, FieldError{Field: prefix + ".src", Message: "manifest src is required"})
		}
		errs = append(errs, validateGlobs(prefix+".include", lib.Include)...)
		errs = append(errs, validateGlobs(prefix+".exclude", lib.Exclude)...)
		errs = append(errs, validateSeverityMap(prefix+".diagnosticSeverity", lib.DiagnosticSeverity)...)
		errs = append(errs, validateFormatterSpec(prefix+".tagFormatter", lib.TagFormatter)...)
		errs = append(errs, validateTypeSource(prefix+".typeSource", lib.TypeSource)...)
	}

	if raw.Schema.FetchTimeout < 0 {
		errs = append(errs, FieldError{Field: "schema.fetch_timeout", Message: "must not be negative"})
	}
	if raw.Reload.Debounce < 0 {
		errs = append(errs, FieldError{Field: "reload.debounce", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &ConfigError{Errors: errs}
	}
	return nil
}

func validateGlobs(field string, patterns []string) []FieldError {
	var errs []FieldError
	for i, p := range patterns {
		if p == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "glob pattern must not be empty",
			})
			continue
		}
		if err := checkGlob(p); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: err.Error(),
			})
		}
	}
	return errs
}

func validateSeverityMap(field string, m map[string]string) []FieldError {
	var errs []FieldError
	for rule, level := range m {
		if !diag.Severity(level).Valid() {
			errs = append(errs, FieldError{
				Field:   field + "." + rule,
				Message: fmt.Sprintf("unknown severity %q (want error, warning, info, hint, or off)", level),
			})
		}
	}
	return errs
}

func validateFormatterSpec(field, spec string) []FieldError {
	if _, err := CompileFormatter(spec); err != nil {
		return []FieldError{{Field: field, Message: err.Error()}}
	}
	return nil
}

func validateTypeSource(field, src string) []FieldError {
	switch TypeSource(src) {
	case "", TypeSourceType, TypeSourceParsedType:
		return nil
	}
	return []FieldError{{
		Field:   field,
		Message: fmt.Sprintf("unknown type source %q (want %q or %q)", src, TypeSourceType, TypeSourceParsedType),
	}}
}
