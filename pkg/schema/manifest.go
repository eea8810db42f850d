package schema

import (
	"encoding/json"
	"fmt"

	"mercator-hq/wclint/pkg/config"
)

// Manifest is the subset of a custom-elements manifest the engine consumes:
// modules containing custom-element declarations with attribute lists.
type Manifest struct {
	SchemaVersion string   `json:"schemaVersion"`
	Modules       []Module `json:"modules"`
}

// Module is one manifest module.
type Module struct {
	Path         string        `json:"path"`
	Declarations []Declaration `json:"declarations"`
}

// Declaration is one declaration inside a module. Only declarations with
// CustomElement set and a non-empty TagName contribute to the index.
type Declaration struct {
	Kind          string              `json:"kind"`
	CustomElement bool                `json:"customElement"`
	TagName       string              `json:"tagName"`
	Name          string              `json:"name"`
	Summary       string              `json:"summary"`
	Description   string              `json:"description"`
	Deprecated    Deprecation         `json:"deprecated"`
	Attributes    []ManifestAttribute `json:"attributes"`
}

// ManifestAttribute is one attribute entry of a declaration. Type holds the
// authored type expression, ParsedType the analyzer-derived one; which is
// trusted is governed by the library's type source.
type ManifestAttribute struct {
	Name        string      `json:"name"`
	Summary     string      `json:"summary"`
	Description string      `json:"description"`
	Default     string      `json:"default"`
	Deprecated  Deprecation `json:"deprecated"`
	Type        *TypeRef    `json:"type"`
	ParsedType  *TypeRef    `json:"parsedType"`
}

// TypeRef carries a type expression as text.
type TypeRef struct {
	Text string `json:"text"`
}

// Deprecation models the manifest "deprecated" field, which may be a bare
// boolean or a string holding the deprecation reason.
type Deprecation struct {
	Deprecated bool
	Reason     string
}

// UnmarshalJSON accepts booleans, strings, and null.
func (d *Deprecation) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		d.Deprecated = b
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Deprecated = true
		d.Reason = s
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	return fmt.Errorf("deprecated must be a boolean or string, got %s", data)
}

// ParseManifest decodes manifest JSON.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Elements resolves the manifest's custom-element declarations into
// ElementDefinitions for the given library scope. The scope's tag formatter
// is applied here, exactly once, before any definition can enter an index;
// raw manifest names never reach the rule engine. Attribute types resolve
// under the scope's type source, falling back to the other field when the
// selected one is absent so each attribute is classified consistently.
func (m *Manifest) Elements(library string, scope *config.Effective) []*ElementDefinition {
	var defs []*ElementDefinition
	for _, mod := range m.Modules {
		for _, decl := range mod.Declarations {
			if !decl.CustomElement || decl.TagName == "" {
				continue
			}
			def := &ElementDefinition{
				Tag:         scope.TagFormatter.Apply(decl.TagName),
				RawTag:      decl.TagName,
				Library:     library,
				Description: firstNonEmpty(decl.Summary, decl.Description),
				Deprecated:  decl.Deprecated.Deprecated,
			}
			for _, attr := range decl.Attributes {
				if attr.Name == "" {
					continue
				}
				def.Attributes = append(def.Attributes, AttributeDefinition{
					Name:        attr.Name,
					Type:        ResolveType(typeText(attr, scope.TypeSource)),
					Deprecated:  attr.Deprecated.Deprecated,
					Default:     attr.Default,
					Description: firstNonEmpty(attr.Summary, attr.Description),
				})
			}
			def.indexAttributes()
			defs = append(defs, def)
		}
	}
	return defs
}

// typeText picks the attribute's type expression under the configured type
// source, with a deterministic fallback to the other field.
func typeText(attr ManifestAttribute, src config.TypeSource) string {
	primary, secondary := attr.Type, attr.ParsedType
	if src == config.TypeSourceParsedType {
		primary, secondary = attr.ParsedType, attr.Type
	}
	if primary != nil {
		return primary.Text
	}
	if secondary != nil {
		return secondary.Text
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
