package markup

import (
	"sort"
	"strings"
)

// Document holds raw document text together with a precomputed line-offset
// table so offsets and line/character positions convert in O(log n).
// Documents are immutable after construction; a changed file is represented
// by a fresh Document.
type Document struct {
	// URI identifies the document, typically a file path or editor URI.
	URI string

	// Text is the full raw document text.
	Text string

	lineOffsets []int
}

// NewDocument builds a Document for the given text, computing the line-offset
// table once up front.
func NewDocument(uri, text string) *Document {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Document{URI: uri, Text: text, lineOffsets: offsets}
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lineOffsets)
}

// PositionAt converts a byte offset into a zero-based line/character position.
// Offsets outside the text are clamped.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Text) {
		offset = len(d.Text)
	}
	// Find the last line start at or before offset.
	line := sort.Search(len(d.lineOffsets), func(i int) bool {
		return d.lineOffsets[i] > offset
	}) - 1
	return Position{Line: line, Character: offset - d.lineOffsets[line]}
}

// OffsetAt converts a zero-based position back into a byte offset, clamping
// positions beyond the end of a line or the document.
func (d *Document) OffsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(d.lineOffsets) {
		return len(d.Text)
	}
	lineStart := d.lineOffsets[pos.Line]
	lineEnd := len(d.Text)
	if pos.Line+1 < len(d.lineOffsets) {
		lineEnd = d.lineOffsets[pos.Line+1]
	}
	offset := lineStart + pos.Character
	if offset > lineEnd {
		offset = lineEnd
	}
	return offset
}

// RangeOf converts a byte-offset span into a position Range.
func (d *Document) RangeOf(start, end int) Range {
	return Range{Start: d.PositionAt(start), End: d.PositionAt(end)}
}

// LineText returns the text of the given zero-based line without its
// trailing newline. Out-of-range lines yield an empty string.
func (d *Document) LineText(line int) string {
	if line < 0 || line >= len(d.lineOffsets) {
		return ""
	}
	start := d.lineOffsets[line]
	end := len(d.Text)
	if line+1 < len(d.lineOffsets) {
		end = d.lineOffsets[line+1]
	}
	return strings.TrimRight(d.Text[start:end], "\r\n")
}

// TagNode is one opening tag of an element in a document: the tag name and
// the byte-offset span of the full opening tag, from '<' through '>'.
// Multi-line opening tags are a single node whose span covers every line.
type TagNode struct {
	// Name is the tag name as written in the document.
	Name string

	// Start is the byte offset of '<'.
	Start int

	// End is the byte offset one past '>'.
	End int

	// NameStart is the byte offset of the first character of the name.
	NameStart int
}

// NameRange returns the position range of the tag name token.
func (n TagNode) NameRange(d *Document) Range {
	return d.RangeOf(n.NameStart, n.NameStart+len(n.Name))
}

// Span returns the position range of the full opening tag.
func (n TagNode) Span(d *Document) Range {
	return d.RangeOf(n.Start, n.End)
}
