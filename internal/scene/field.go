package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// pathSegment is one element of a parsed field path. An index addresses one
// element of a list field.
type pathSegment struct {
	key      string
	index    int
	hasIndex bool
}

// parsePath splits a dotted field path into segments. A segment may carry a
// trailing [N] index. The serialized-array idiom `X.Array.data[N]` collapses
// to segment X with index N, so both spellings address the same element.
func parsePath(path string) ([]pathSegment, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty field path", ErrMalformed)
	}

	raw := strings.Split(path, ".")
	segs := make([]pathSegment, 0, len(raw))
	for _, part := range raw {
		seg := pathSegment{key: part}
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("%w: unterminated index in %q", ErrMalformed, part)
			}
			n, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad index in %q", ErrMalformed, part)
			}
			seg.key = part[:open]
			seg.index = n
			seg.hasIndex = true
		}
		segs = append(segs, seg)
	}

	// Collapse the Array.data spelling onto the owning segment.
	out := segs[:0]
	for i := 0; i < len(segs); i++ {
		if i+1 < len(segs) && segs[i+1].key == "Array" {
			if i+2 < len(segs) && segs[i+2].key == "data" && segs[i+2].hasIndex {
				merged := segs[i]
				merged.index = segs[i+2].index
				merged.hasIndex = true
				out = append(out, merged)
				i += 2
				continue
			}
		}
		out = append(out, segs[i])
	}
	return out, nil
}

// indentOf counts leading spaces of a body line.
func indentOf(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// lineKey returns the key of a `key: value` body line: the text before the
// first colon, trimmed of indentation and any leading list-item marker.
// Lines without a colon have no key.
func lineKey(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	trimmed = strings.TrimPrefix(trimmed, "- ")
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		return "", false
	}
	return strings.TrimSpace(trimmed[:colon]), true
}

// isListItem reports whether a body line is a `- ` prefixed list item.
func isListItem(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), "- ")
}

// resolvePath walks a parsed path through the block body and returns the
// index of the line the final segment addresses. Scope narrows at each
// segment: a mapping segment scopes to the lines indented deeper than its
// own line; an indexed segment scopes to the Nth list item under the named
// list key. No case or spacing normalization is attempted: an exact key
// miss is reported as not found.
func resolvePath(b *Block, segs []pathSegment) (int, error) {
	start, end := 0, len(b.Lines)

	for si, seg := range segs {
		keyLine := -1
		for i := start; i < end; i++ {
			if k, ok := lineKey(b.Lines[i]); ok && k == seg.key {
				keyLine = i
				break
			}
		}
		if keyLine < 0 {
			return 0, fmt.Errorf("%w: field %q", ErrNotFound, seg.key)
		}

		if seg.hasIndex {
			itemLine, itemEnd, err := locateListItem(b, keyLine, end, seg.index)
			if err != nil {
				return 0, err
			}
			if si == len(segs)-1 {
				return itemLine, nil
			}
			start, end = itemLine, itemEnd
			continue
		}

		if si == len(segs)-1 {
			return keyLine, nil
		}

		// Narrow to the nested mapping under this key.
		keyIndent := indentOf(b.Lines[keyLine])
		subEnd := keyLine + 1
		for subEnd < end && indentOf(b.Lines[subEnd]) > keyIndent {
			subEnd++
		}
		start, end = keyLine+1, subEnd
	}

	return 0, fmt.Errorf("%w: empty field path", ErrMalformed)
}

// locateListItem finds the Nth `- ` item of the list keyed at keyLine and
// returns the item's line index plus the index one past its continuation
// lines. List items sit at the same indentation as their key in this
// format, so items are counted until a non-item line at or below the key's
// indentation closes the list.
func locateListItem(b *Block, keyLine, end, n int) (int, int, error) {
	key, _ := lineKey(b.Lines[keyLine])
	keyIndent := indentOf(b.Lines[keyLine])

	// An inline empty list (`key: []`) has no addressable items.
	if rest := lineValue(b.Lines[keyLine]); rest != "" {
		return 0, 0, fmt.Errorf("%w: list %q has no block items", ErrMalformed, key)
	}

	// Items sit at the key's own indentation (the usual layout) or one
	// level deeper. The first item fixes the list's item indentation;
	// deeper lines are continuations of the current item.
	itemIndent := -1
	count := 0
	for i := keyLine + 1; i < end; i++ {
		line := b.Lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		ind := indentOf(line)
		if ind < keyIndent {
			break
		}

		if itemIndent < 0 {
			if !isListItem(line) || ind > keyIndent+2 {
				break
			}
			itemIndent = ind
		}

		if ind < itemIndent || (ind == itemIndent && !isListItem(line)) {
			break
		}
		if ind == itemIndent {
			if count == n {
				itemEnd := i + 1
				for itemEnd < end {
					next := b.Lines[itemEnd]
					if strings.TrimSpace(next) != "" && indentOf(next) <= itemIndent {
						break
					}
					itemEnd++
				}
				return i, itemEnd, nil
			}
			count++
		}
	}

	return 0, 0, fmt.Errorf("%w: list %q has no element %d", ErrNotFound, key, n)
}

// lineValue returns the inline value portion of a body line: everything
// after the key's colon (or after the list-item marker for bare items),
// with surrounding whitespace and any trailing comment stripped.
func lineValue(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if strings.HasPrefix(trimmed, "- ") && !strings.Contains(trimmed, ":") {
		return stripComment(strings.TrimPrefix(trimmed, "- "))
	}
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		return ""
	}
	return stripComment(trimmed[colon+1:])
}

// stripComment drops a trailing ` #` inline comment and trims the result.
func stripComment(s string) string {
	if i := strings.Index(s, " #"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// GetField resolves a field path within the block body and returns the
// addressed line's value text.
func (d *Document) GetField(b *Block, path string) (string, error) {
	segs, err := parsePath(path)
	if err != nil {
		return "", err
	}
	idx, err := resolvePath(b, segs)
	if err != nil {
		return "", err
	}
	return lineValue(b.Lines[idx]), nil
}

// SetField rewrites exactly one line's value, preserving the line's
// indentation, key, and trailing inline comment byte-for-byte. The document
// is marked dirty for the next save.
func (d *Document) SetField(b *Block, path, value string) error {
	if err := validateName("value", value); err != nil {
		return err
	}
	segs, err := parsePath(path)
	if err != nil {
		return err
	}
	idx, err := resolvePath(b, segs)
	if err != nil {
		return err
	}
	b.Lines[idx] = rewriteValue(b.Lines[idx], value)
	d.markDirty()
	return nil
}

// rewriteValue replaces only the value portion of a body line.
func rewriteValue(line, value string) string {
	indent := line[:indentOf(line)]
	rest := line[len(indent):]

	prefix := ""
	if strings.HasPrefix(rest, "- ") {
		if !strings.Contains(rest, ":") {
			// Bare list item: `- value`.
			comment := trailingComment(rest[2:])
			return indent + "- " + value + comment
		}
		prefix = "- "
		rest = rest[2:]
	}

	colon := strings.IndexByte(rest, ':')
	key := rest[:colon]
	tail := rest[colon+1:]
	comment := trailingComment(tail)

	if value == "" {
		return indent + prefix + key + ":" + comment
	}
	return indent + prefix + key + ": " + value + comment
}

// trailingComment returns the ` # ...` suffix of a value portion, or empty.
func trailingComment(s string) string {
	if i := strings.Index(s, " #"); i >= 0 {
		return s[i:]
	}
	return ""
}
