package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("panne VPN ce matin")
		b := IDFromContent("panne VPN ce matin")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct IDs", func(t *testing.T) {
		a := IDFromContent("incident 502")
		b := IDFromContent("incident 503")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.NotZero(t, IDFromContent(""))
	})
}

func TestSnippetScoreLabel(t *testing.T) {
	sn := Snippet{Content: "x", Source: "kb/a.md", Score: 0.25}
	assert.Equal(t, "0.250000", sn.ScoreLabel())

	sn.Score = 1e9 + 1
	assert.Equal(t, "1000000001.000000", sn.ScoreLabel())

	sn.Score = -2.5
	assert.Equal(t, "-2.500000", sn.ScoreLabel())
}

func TestChunkEquality(t *testing.T) {
	a := Chunk{Content: "texte", Source: "kb/doc.md"}
	b := Chunk{Content: "texte", Source: "kb/doc.md"}
	c := Chunk{Content: "texte", Source: "kb/autre.md"}

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// Chunks must be usable as map keys for candidate merging.
	m := map[Chunk]int{a: 1}
	m[b]++
	assert.Equal(t, 2, m[a])
}
