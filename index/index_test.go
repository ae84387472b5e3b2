package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/soutienhq/soutien/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKB(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestNewBuilder(t *testing.T) {
	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewBuilder(nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("valid", func(t *testing.T) {
		b, err := NewBuilder(mock.NewMockEmbedder(), WithPoolSize(2))
		require.NoError(t, err)
		assert.NotNil(t, b)
	})
}

func TestNewChromemStore(t *testing.T) {
	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewChromemStore(t.TempDir(), nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestRebuildAndSearch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	kbDir := writeKB(t, map[string]string{
		"incident_502.md":   "Erreur 502 Bad Gateway.\n\nRedémarrer le reverse proxy.",
		"provisioning.md":   "Création d'un accès avec profil standard.",
		"reset_password.md": "Envoyer le lien de réinitialisation.",
	})
	persistDir := filepath.Join(t.TempDir(), "vectors")

	builder, err := NewBuilder(embedder, WithPoolSize(2))
	require.NoError(t, err)

	n, err := builder.Rebuild(context.Background(), kbDir, persistDir)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	store, err := NewChromemStore(persistDir, embedder)
	require.NoError(t, err)

	hits, err := store.Search(context.Background(), "Erreur 502 Bad Gateway.", 3)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	// The mock embedder hashes text, so the exact chunk is its own nearest
	// neighbour at distance ~0.
	assert.Equal(t, "Erreur 502 Bad Gateway.", hits[0].Content)
	assert.Contains(t, hits[0].Source, "incident_502.md")
	assert.InDelta(t, 0, hits[0].Distance, 1e-5)

	// Distances come back ascending.
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i].Distance, hits[i-1].Distance)
	}
}

func TestRebuildEmbedsInBatches(t *testing.T) {
	paras := make([]string, 20)
	for i := range paras {
		paras[i] = fmt.Sprintf("Paragraphe numéro %d du guide.", i)
	}
	kbDir := writeKB(t, map[string]string{"guide.md": strings.Join(paras, "\n\n")})
	persistDir := filepath.Join(t.TempDir(), "vectors")

	embedder := mock.NewMockEmbedder()
	var mu sync.Mutex
	var batchSizes []int
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		mu.Lock()
		batchSizes = append(batchSizes, len(texts))
		mu.Unlock()
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1, 0, 0}
		}
		return vectors, nil
	}

	builder, err := NewBuilder(embedder, WithPoolSize(2))
	require.NoError(t, err)
	n, err := builder.Rebuild(context.Background(), kbDir, persistDir)
	require.NoError(t, err)
	assert.Equal(t, len(paras), n)

	// 20 chunks over batches of at most embedBatchSize: two service calls,
	// not one per chunk.
	require.Len(t, batchSizes, 2)
	total := 0
	for _, size := range batchSizes {
		assert.LessOrEqual(t, size, embedBatchSize)
		total += size
	}
	assert.Equal(t, len(paras), total)
}

func TestSearchCapsKAtCollectionSize(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	kbDir := writeKB(t, map[string]string{"seul.md": "Un unique paragraphe."})
	persistDir := filepath.Join(t.TempDir(), "vectors")

	builder, err := NewBuilder(embedder)
	require.NoError(t, err)
	_, err = builder.Rebuild(context.Background(), kbDir, persistDir)
	require.NoError(t, err)

	store, err := NewChromemStore(persistDir, embedder)
	require.NoError(t, err)

	hits, err := store.Search(context.Background(), "paragraphe", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearchWithoutRebuild(t *testing.T) {
	store, err := NewChromemStore(filepath.Join(t.TempDir(), "vectors"), mock.NewMockEmbedder())
	require.NoError(t, err)

	_, err = store.Search(context.Background(), "quoi que ce soit", 3)
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestRebuildEmptyCorpus(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	persistDir := filepath.Join(t.TempDir(), "vectors")

	builder, err := NewBuilder(embedder)
	require.NoError(t, err)
	n, err := builder.Rebuild(context.Background(), t.TempDir(), persistDir)
	require.NoError(t, err)
	assert.Zero(t, n)

	store, err := NewChromemStore(persistDir, embedder)
	require.NoError(t, err)
	hits, err := store.Search(context.Background(), "rien", 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRebuildReplacesPreviousIndex(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	persistDir := filepath.Join(t.TempDir(), "vectors")

	builder, err := NewBuilder(embedder)
	require.NoError(t, err)

	first := writeKB(t, map[string]string{"v1.md": "Ancien contenu unique."})
	_, err = builder.Rebuild(context.Background(), first, persistDir)
	require.NoError(t, err)

	second := writeKB(t, map[string]string{"v2.md": "Nouveau contenu unique."})
	_, err = builder.Rebuild(context.Background(), second, persistDir)
	require.NoError(t, err)

	store, err := NewChromemStore(persistDir, embedder)
	require.NoError(t, err)
	hits, err := store.Search(context.Background(), "contenu", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Nouveau contenu unique.", hits[0].Content)

	// The staging directory must not survive the swap.
	_, statErr := os.Stat(persistDir + ".rebuild")
	assert.True(t, os.IsNotExist(statErr))
}
