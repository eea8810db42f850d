package config

import (
	"fmt"
	"strings"
)

// Formatter is a compiled tag-name transform. Formatters are plain data so
// Effective snapshots stay comparable; the zero value is the identity
// transform.
type Formatter struct {
	ops []formatterOp
}

type formatterOp struct {
	kind string
	a    string
	b    string
}

const (
	opLower   = "lower"
	opPrefix  = "prefix"
	opSuffix  = "suffix"
	opReplace = "replace"
)

// CompileFormatter parses a formatter spec into a Formatter. The grammar is
// a pipe-separated list of steps:
//
//	identity            no-op (same as the empty spec)
//	lower               lowercase the name
//	prefix:<p>          prepend <p>
//	suffix:<s>          append <s>
//	replace:<old>=<new> replace every occurrence of <old>
//
// Example: "lower|prefix:ui-" maps "Badge" to "ui-badge".
func CompileFormatter(spec string) (Formatter, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "identity" {
		return Formatter{}, nil
	}

	var f Formatter
	for _, step := range strings.Split(spec, "|") {
		step = strings.TrimSpace(step)
		kind, arg, _ := strings.Cut(step, ":")
		switch kind {
		case "identity":
			// no-op step
		case opLower:
			f.ops = append(f.ops, formatterOp{kind: opLower})
		case opPrefix, opSuffix:
			if arg == "" {
				return Formatter{}, fmt.Errorf("formatter step %q requires an argument", step)
			}
			f.ops = append(f.ops, formatterOp{kind: kind, a: arg})
		case opReplace:
			old, repl, ok := strings.Cut(arg, "=")
			if !ok || old == "" {
				return Formatter{}, fmt.Errorf("formatter step %q must be replace:<old>=<new>", step)
			}
			f.ops = append(f.ops, formatterOp{kind: opReplace, a: old, b: repl})
		default:
			return Formatter{}, fmt.Errorf("unknown formatter step %q", step)
		}
	}
	return f, nil
}

// Apply transforms a raw tag name.
func (f Formatter) Apply(name string) string {
	for _, op := range f.ops {
		switch op.kind {
		case opLower:
			name = strings.ToLower(name)
		case opPrefix:
			name = op.a + name
		case opSuffix:
			name = name + op.a
		case opReplace:
			name = strings.ReplaceAll(name, op.a, op.b)
		}
	}
	return name
}

// IsIdentity reports whether the formatter performs no transformation.
func (f Formatter) IsIdentity() bool {
	return len(f.ops) == 0
}
