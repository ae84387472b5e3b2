package index

import (
	"context"
	"fmt"
	"log/slog"

	chromem "github.com/philippgille/chromem-go"
	"github.com/soutienhq/soutien/ai"
)

// collectionName is the single chromem collection holding the chunked
// knowledge base. It must match between Builder and ChromemStore.
const collectionName = "kb_index"

// ChromemStore implements Store on top of a chromem-go persistent database.
//
// The database is reopened from disk on every search. That keeps queries
// read-only with respect to the persisted directory and means a completed
// rebuild swap is picked up by the next query without any coordination.
type ChromemStore struct {
	persistDir string
	embedder   ai.Embedder
	logger     *slog.Logger
}

// StoreOption configures a ChromemStore.
type StoreOption func(*ChromemStore)

// WithStoreLogger sets a custom logger.
// Default is slog.Default().
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *ChromemStore) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewChromemStore creates a read-only view over the persisted index at
// persistDir. The embedder must match the one used at build time, since
// queries are embedded with it.
func NewChromemStore(persistDir string, embedder ai.Embedder, opts ...StoreOption) (*ChromemStore, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &ChromemStore{
		persistDir: persistDir,
		embedder:   embedder,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// embeddingFunc adapts ai.Embedder to the chromem callback.
func embeddingFunc(embedder ai.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedText(ctx, text)
	}
}

// Search embeds the query and returns up to k hits, nearest first.
// Distance is 1 - cosine similarity, so lower is better.
func (s *ChromemStore) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if k < 1 {
		return nil, nil
	}

	db, err := chromem.NewPersistentDB(s.persistDir, false)
	if err != nil {
		return nil, fmt.Errorf("opening index at %s: %w", s.persistDir, err)
	}

	collection := db.GetCollection(collectionName, embeddingFunc(s.embedder))
	if collection == nil {
		return nil, ErrCollectionNotFound
	}

	// chromem requires nResults <= document count.
	count := collection.Count()
	if count == 0 {
		return []Hit{}, nil
	}
	if k > count {
		k = count
	}

	results, err := collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{
			Content:  r.Content,
			Source:   r.Metadata["source"],
			Distance: 1 - float64(r.Similarity),
		}
	}

	s.logger.Debug("vector search complete", "k", k, "hits", len(hits))
	return hits, nil
}
