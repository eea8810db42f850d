package schema

import "strings"

// TypeKind is the closed set of attribute value kinds the rule engine
// validates against. Union and intersection types that include an open
// member resolve to KindUnchecked and are never value-validated.
type TypeKind int

const (
	// KindUnchecked covers unions/intersections with open members and
	// anything the resolver cannot classify. No value validation applies.
	KindUnchecked TypeKind = iota

	// KindBoolean accepts absence, the empty string, "true" and "false".
	KindBoolean

	// KindNumber accepts values that parse as a number.
	KindNumber

	// KindEnum accepts only members of its literal set.
	KindEnum

	// KindString is an open string: present but never value-validated.
	KindString
)

// String returns the kind's name for logs and test failure messages.
func (k TypeKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindEnum:
		return "enum"
	case KindString:
		return "string"
	default:
		return "unchecked"
	}
}

// TypeDescriptor is the resolved type of one attribute, computed once at
// load time and never re-inspected during validation.
type TypeDescriptor struct {
	Kind TypeKind

	// Literals holds the members of a KindEnum set, in manifest order.
	Literals []string
}

// Contains reports whether value is a member of an enum descriptor's set.
func (t TypeDescriptor) Contains(value string) bool {
	for _, lit := range t.Literals {
		if lit == value {
			return true
		}
	}
	return false
}

// Checked reports whether the descriptor participates in value validation.
func (t TypeDescriptor) Checked() bool {
	switch t.Kind {
	case KindBoolean, KindNumber, KindEnum:
		return true
	}
	return false
}

// AttributeDefinition describes one attribute of an element as declared by
// its library's manifest.
type AttributeDefinition struct {
	Name        string
	Type        TypeDescriptor
	Deprecated  bool
	Default     string
	Description string
}

// ElementDefinition describes one custom element. Definitions are owned by
// the index and rebuilt wholesale on reload; they are never mutated while
// readers may hold them.
type ElementDefinition struct {
	// Tag is the formatted tag name used for every index lookup.
	Tag string

	// RawTag is the name as it appears in the manifest, kept for messages.
	RawTag string

	// Library is the owning library's name, used for severity resolution.
	Library string

	Description string
	Deprecated  bool

	// Attributes holds the element's attributes in manifest order.
	Attributes []AttributeDefinition

	byName map[string]*AttributeDefinition
}

// Attribute looks up an attribute definition by name, case-insensitively,
// matching HTML's attribute name folding.
func (e *ElementDefinition) Attribute(name string) (*AttributeDefinition, bool) {
	def, ok := e.byName[strings.ToLower(name)]
	return def, ok
}

// indexAttributes builds the case-folded lookup map. Called once when the
// definition enters an index.
func (e *ElementDefinition) indexAttributes() {
	e.byName = make(map[string]*AttributeDefinition, len(e.Attributes))
	for i := range e.Attributes {
		e.byName[strings.ToLower(e.Attributes[i].Name)] = &e.Attributes[i]
	}
}
