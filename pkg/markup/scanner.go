package markup

import "strings"

// Comment is a markup comment with its byte-offset span. The Text field
// holds the comment body without the delimiters.
type Comment struct {
	Text  string
	Start int
	End   int
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.' || c == ':'
}

// ScanTags locates every element opening tag in the document and returns
// them in document order. Closing tags and comments are skipped; quoted
// attribute values may contain '>' without terminating the tag. A tag whose
// '>' never arrives is dropped silently.
func ScanTags(d *Document) []TagNode {
	var nodes []TagNode
	text := d.Text
	i := 0
	for i < len(text) {
		lt := strings.IndexByte(text[i:], '<')
		if lt < 0 {
			break
		}
		i += lt
		switch {
		case strings.HasPrefix(text[i:], "<!--"):
			end := strings.Index(text[i+4:], "-->")
			if end < 0 {
				return nodes
			}
			i += 4 + end + 3
		case strings.HasPrefix(text[i:], "</"):
			i += 2
		case i+1 < len(text) && isNameStart(text[i+1]):
			node, next, ok := scanOpenTag(text, i)
			if ok {
				nodes = append(nodes, node)
			}
			i = next
		default:
			i++
		}
	}
	return nodes
}

// scanOpenTag reads one opening tag starting at the '<' at offset start.
// It returns the node, the offset to resume scanning from, and whether the
// tag was terminated by '>'.
func scanOpenTag(text string, start int) (TagNode, int, bool) {
	nameStart := start + 1
	i := nameStart
	for i < len(text) && isNameChar(text[i]) {
		i++
	}
	name := text[nameStart:i]

	// Walk to the closing '>' honoring quoted values.
	for i < len(text) {
		switch text[i] {
		case '"', '\'':
			quote := text[i]
			i++
			for i < len(text) && text[i] != quote {
				i++
			}
			if i < len(text) {
				i++
			}
		case '>':
			return TagNode{Name: name, Start: start, End: i + 1, NameStart: nameStart}, i + 1, true
		case '<':
			// Unterminated tag; resume at the next '<'.
			return TagNode{}, i, false
		default:
			i++
		}
	}
	return TagNode{}, len(text), false
}

// ScanComments locates every markup comment in the document in order.
// An unterminated trailing comment extends to the end of the text.
func ScanComments(d *Document) []Comment {
	var comments []Comment
	text := d.Text
	i := 0
	for i < len(text) {
		start := strings.Index(text[i:], "<!--")
		if start < 0 {
			break
		}
		start += i
		bodyStart := start + 4
		end := strings.Index(text[bodyStart:], "-->")
		if end < 0 {
			comments = append(comments, Comment{Text: text[bodyStart:], Start: start, End: len(text)})
			break
		}
		comments = append(comments, Comment{
			Text:  text[bodyStart : bodyStart+end],
			Start: start,
			End:   bodyStart + end + 3,
		})
		i = bodyStart + end + 3
	}
	return comments
}
