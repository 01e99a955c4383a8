package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkEmptyText(t *testing.T) {
	c := New(100, 10)
	assert.Nil(t, c.Chunk("   ", "src", ""))
}

func TestChunkSingleSmallText(t *testing.T) {
	c := New(500, 50)
	got := c.Chunk("FOSS-CIT runs workshops. Everyone is welcome!", "handbook", "activities")
	require.Len(t, got, 1)
	assert.Equal(t, "FOSS-CIT runs workshops Everyone is welcome", got[0].Text)
	assert.Equal(t, "handbook", got[0].Source)
	assert.Equal(t, "activities", got[0].Category)
	assert.Equal(t, 1, got[0].ChunkNumber)
	assert.Equal(t, len(got[0].Text), got[0].ChunkSize)
}

func TestChunkNormalizesWhitespace(t *testing.T) {
	c := New(500, 0)
	got := c.Chunk("line one.\n\n   line\ttwo.", "src", "")
	require.Len(t, got, 1)
	assert.Equal(t, "line one line two", got[0].Text)
}

func TestChunkRespectsBudgetAndNumbersChunks(t *testing.T) {
	c := New(60, 10)
	var b strings.Builder
	for i := 0; i < 8; i++ {
		b.WriteString("This sentence has a fixed length for testing. ")
	}
	got := c.Chunk(b.String(), "doc", "")
	require.Greater(t, len(got), 1)
	for i, p := range got {
		assert.Equal(t, i+1, p.ChunkNumber)
		assert.Equal(t, "doc", p.Source)
		assert.NotEmpty(t, p.Text)
	}
}

func TestChunkCarriesOverlap(t *testing.T) {
	c := New(30, 10)
	got := c.Chunk("First short sentence here. Second short sentence here.", "doc", "")
	require.Len(t, got, 2)
	// the second chunk starts with the tail of the first
	tail := got[0].Text[len(got[0].Text)-10:]
	assert.True(t, strings.HasPrefix(got[1].Text, strings.TrimSpace(tail)),
		"chunk %q should start with overlap %q", got[1].Text, tail)
}

func TestChunkDefaults(t *testing.T) {
	c := New(0, -5)
	assert.Equal(t, 500, c.chunkSize)
	assert.Equal(t, 0, c.overlap)
}
