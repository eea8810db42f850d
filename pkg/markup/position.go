package markup

import "fmt"

// Position is a zero-based line/character location in a document.
type Position struct {
	Line      int
	Character int
}

// String returns a human-readable representation in "line:character" form,
// converted to one-based numbering for display.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

// Before reports whether p is strictly before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// Range is a half-open span [Start, End) in a document.
type Range struct {
	Start Position
	End   Position
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// ContainsLine reports whether the given zero-based line falls within the
// range's line span, inclusive of both endpoints.
func (r Range) ContainsLine(line int) bool {
	return line >= r.Start.Line && line <= r.End.Line
}
