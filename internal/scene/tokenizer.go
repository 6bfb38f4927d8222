package scene

import (
	"regexp"
	"strconv"
	"strings"
)

// anchorRe matches a block anchor line: `--- !u!<classID> &<fileID>` with an
// optional ` stripped` marker on prefab-owned placeholder blocks. File IDs
// may be negative in documents written by newer editors.
var anchorRe = regexp.MustCompile(`^--- !u!(\d+) &(-?\d+)( stripped)?\s*$`)

// splitResult is the outcome of tokenizing one document's text.
type splitResult struct {
	// header holds every line before the first anchor (the %YAML
	// signature and %TAG directive).
	header []string
	blocks []*Block

	// crlf records whether the source used Windows line endings, and
	// trailingNewline whether it ended with a line terminator. Both are
	// re-applied on save so an untouched document round-trips exactly.
	crlf            bool
	trailingNewline bool
}

// split tokenizes raw document text into a leading header and an ordered
// block sequence. It is a pure function of its input: no anchors means zero
// blocks, which callers treat as "not a recognized document".
func split(content string) splitResult {
	res := splitResult{}

	if strings.Contains(content, "\r\n") {
		res.crlf = true
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	res.trailingNewline = strings.HasSuffix(content, "\n")
	content = strings.TrimSuffix(content, "\n")

	var current *Block
	for _, line := range strings.Split(content, "\n") {
		m := anchorRe.FindStringSubmatch(line)
		if m == nil {
			if current != nil {
				current.Lines = append(current.Lines, line)
			} else {
				res.header = append(res.header, line)
			}
			continue
		}

		classID, _ := strconv.Atoi(m[1])
		fileID, _ := strconv.ParseInt(m[2], 10, 64)
		current = &Block{
			FileID:   fileID,
			ClassID:  classID,
			Stripped: m[3] != "",
			anchor:   line,
		}
		res.blocks = append(res.blocks, current)
	}

	// An empty input produces one empty header line from Split; drop it
	// so a zero-byte file reads as a truly empty document.
	if len(res.blocks) == 0 && len(res.header) == 1 && res.header[0] == "" && !res.trailingNewline {
		res.header = nil
	}

	return res
}

// render reassembles header and blocks into document text, restoring the
// recorded line-ending convention.
func render(header []string, blocks []*Block, crlf, trailingNewline bool) string {
	var sb strings.Builder
	lines := make([]string, 0, len(header))
	lines = append(lines, header...)
	for _, b := range blocks {
		lines = append(lines, b.anchor)
		lines = append(lines, b.Lines...)
	}

	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line)
	}
	if trailingNewline {
		sb.WriteString("\n")
	}

	out := sb.String()
	if crlf {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return out
}
