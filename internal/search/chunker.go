// Package search maintains a keyword index over project documentation.
// Markdown files are split into heading-bounded chunks, persisted in a
// sqlite database, and searched with a term-frequency score so "docs
// search" can answer questions without rescanning the tree.
package search

import (
	"strings"

	"github.com/google/uuid"
)

// Chunk is one indexable slice of a document.
type Chunk struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Heading string `json:"heading"`
	Content string `json:"content"`
	Tokens  int    `json:"tokens"`
}

// approxTokens estimates token count from whitespace-separated words.
// Close enough for chunk sizing, which only needs rough boundaries.
func approxTokens(s string) int {
	return len(strings.Fields(s))
}

// ChunkMarkdown splits markdown into chunks bounded by headings and the
// maxTokens budget. Fenced code blocks are never split, and a heading
// always starts a fresh chunk so results carry a usable section title.
func ChunkMarkdown(path, content string, maxTokens int) []Chunk {
	if maxTokens <= 0 {
		maxTokens = 400
	}

	var chunks []Chunk
	var buf []string
	heading := ""
	tokens := 0
	inFence := false

	flush := func() {
		body := strings.TrimSpace(strings.Join(buf, "\n"))
		if body != "" {
			chunks = append(chunks, Chunk{
				ID:      uuid.NewString(),
				Path:    path,
				Heading: heading,
				Content: body,
				Tokens:  approxTokens(body),
			})
		}
		buf = buf[:0]
		tokens = 0
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if !inFence && strings.HasPrefix(trimmed, "#") {
			flush()
			heading = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
		buf = append(buf, line)
		tokens += approxTokens(line)
		if tokens >= maxTokens && !inFence {
			flush()
		}
	}
	flush()
	return chunks
}
