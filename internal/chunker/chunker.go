// Package chunker splits source text into knowledge-base passages.
package chunker

import (
	"regexp"
	"strings"

	"fosschat/internal/domain"
)

// Chunker builds sentence-aligned passages under a character budget, with a
// character overlap carried between consecutive passages so sentence
// fragments keep their surroundings.
type Chunker struct {
	chunkSize int
	overlap   int
	splitter  *regexp.Regexp
	spaces    *regexp.Regexp
}

// New creates a chunker. Defaults: 500-character budget, 50-character overlap.
func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 {
		overlap = 0
	}
	return &Chunker{
		chunkSize: chunkSize,
		overlap:   overlap,
		splitter:  regexp.MustCompile(`[.!?]+`),
		spaces:    regexp.MustCompile(`\s+`),
	}
}

// Chunk splits text into passages tagged with source and an optional
// category. Chunk numbers start at 1.
func (c *Chunker) Chunk(text, source, category string) []domain.Passage {
	normalized := c.spaces.ReplaceAllString(text, " ")
	var sentences []string
	for _, s := range c.splitter.Split(normalized, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return nil
	}

	var passages []domain.Passage
	current := ""
	number := 1
	flush := func() {
		trimmed := strings.TrimSpace(current)
		if trimmed == "" {
			return
		}
		passages = append(passages, domain.Passage{
			Text:        trimmed,
			Source:      source,
			Category:    category,
			ChunkNumber: number,
			ChunkSize:   len(trimmed),
		})
		number++
	}
	for _, sentence := range sentences {
		if current != "" && len(current)+len(sentence) > c.chunkSize {
			flush()
			// carry the tail of the finished chunk into the next one
			tail := current
			if len(tail) > c.overlap {
				tail = tail[len(tail)-c.overlap:]
			}
			current = tail + " " + sentence
			continue
		}
		if current == "" {
			current = sentence
		} else {
			current += " " + sentence
		}
	}
	flush()
	return passages
}
