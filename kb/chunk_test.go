package kb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	t.Run("splits on blank lines", func(t *testing.T) {
		chunks := ChunkText("premier paragraphe\n\nsecond paragraphe", DefaultMaxChunkLen)
		assert.Equal(t, []string{"premier paragraphe", "second paragraphe"}, chunks)
	})

	t.Run("drops whitespace-only paragraphs", func(t *testing.T) {
		chunks := ChunkText("a\n\n   \n\n\t\n\nb", DefaultMaxChunkLen)
		assert.Equal(t, []string{"a", "b"}, chunks)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ChunkText("", DefaultMaxChunkLen))
		assert.Empty(t, ChunkText("\n\n\n\n", DefaultMaxChunkLen))
	})

	t.Run("hard-wraps oversize paragraphs", func(t *testing.T) {
		para := strings.Repeat("x", 1500)
		chunks := ChunkText(para, 600)
		require.Len(t, chunks, 3)
		assert.Equal(t, 600, len([]rune(chunks[0])))
		assert.Equal(t, 600, len([]rune(chunks[1])))
		assert.Equal(t, 300, len([]rune(chunks[2])))
	})

	t.Run("hard-wrap counts runes not bytes", func(t *testing.T) {
		para := strings.Repeat("é", 700)
		chunks := ChunkText(para, 600)
		require.Len(t, chunks, 2)
		assert.Equal(t, 600, len([]rune(chunks[0])))
		assert.Equal(t, 100, len([]rune(chunks[1])))
	})

	t.Run("every chunk bounded and non-empty", func(t *testing.T) {
		text := "intro\n\n" + strings.Repeat("mot ", 400) + "\n\nfin"
		for _, c := range ChunkText(text, 100) {
			assert.NotEmpty(t, c)
			assert.LessOrEqual(t, len([]rune(c)), 100)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		text := "un\n\n" + strings.Repeat("longue procédure à découper ", 60) + "\n\ndeux"
		assert.Equal(t, ChunkText(text, 120), ChunkText(text, 120))
	})

	t.Run("non-positive max falls back to default", func(t *testing.T) {
		para := strings.Repeat("y", DefaultMaxChunkLen+10)
		chunks := ChunkText(para, 0)
		require.Len(t, chunks, 2)
		assert.Equal(t, DefaultMaxChunkLen, len([]rune(chunks[0])))
	})
}
