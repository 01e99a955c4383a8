package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Workshops teach open source. Lunch was served. Open source workshops build skills. The weather was fine."
	got := s.Summarize(text, 2)
	// the two workshop sentences dominate the token frequencies
	assert.Contains(t, got, "Workshops teach open source.")
	assert.Contains(t, got, "Open source workshops build skills.")
	assert.Less(t, strings.Index(got, "Workshops teach"), strings.Index(got, "Open source workshops"))
}

func TestSummarizeNoSentences(t *testing.T) {
	s := NewFrequencySummarizer()
	assert.Equal(t, "just a fragment", s.Summarize("  just a fragment  ", 3))
}

func TestSummarizeFewerSentencesThanRequested(t *testing.T) {
	s := NewFrequencySummarizer()
	got := s.Summarize("Only one sentence here.", 5)
	assert.Equal(t, "Only one sentence here.", got)
}
