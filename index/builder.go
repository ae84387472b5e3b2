package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	chromem "github.com/philippgille/chromem-go"
	"github.com/soutienhq/soutien/ai"
	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/kb"
)

// Builder (re)builds the persisted vector index from the knowledge-base
// source documents. A rebuild replaces the previous index wholesale.
type Builder struct {
	embedder    ai.Embedder
	maxChunkLen int
	poolSize    int
	logger      *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets a custom logger.
// Default is slog.Default().
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
	}
}

// WithMaxChunkLen sets the chunk length bound used when splitting
// documents. Default is kb.DefaultMaxChunkLen. The same bound must be
// used by query-time lexical scoring, otherwise merge keys diverge.
func WithMaxChunkLen(maxLen int) BuilderOption {
	return func(b *Builder) {
		if maxLen < 1 {
			maxLen = kb.DefaultMaxChunkLen
		}
		b.maxChunkLen = maxLen
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) BuilderOption {
	return func(b *Builder) {
		if size < 1 {
			size = 1
		}
		b.poolSize = size
	}
}

// NewBuilder creates an index builder.
func NewBuilder(embedder ai.Embedder, opts ...BuilderOption) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	b := &Builder{
		embedder:    embedder,
		maxChunkLen: kb.DefaultMaxChunkLen,
		poolSize:    poolSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Rebuild chunks every document under kbDir, embeds the chunks, and writes
// a complete index into a fresh directory before swapping it over
// persistDir. Returns the number of chunks indexed.
//
// The swap is the only moment the previous index is touched; a failed
// rebuild leaves it intact. Rebuild must not run concurrently with another
// rebuild of the same persistDir.
func (b *Builder) Rebuild(ctx context.Context, kbDir, persistDir string) (int, error) {
	chunks, err := kb.ReadCorpus(kbDir, b.maxChunkLen)
	if err != nil {
		return 0, err
	}

	staging := persistDir + ".rebuild"
	if err := os.RemoveAll(staging); err != nil {
		return 0, fmt.Errorf("clearing staging dir: %w", err)
	}

	db, err := chromem.NewPersistentDB(staging, false)
	if err != nil {
		return 0, fmt.Errorf("creating staging index: %w", err)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc(b.embedder))
	if err != nil {
		os.RemoveAll(staging)
		return 0, fmt.Errorf("creating collection: %w", err)
	}

	docs, err := b.embedChunks(ctx, chunks)
	if err != nil {
		os.RemoveAll(staging)
		return 0, err
	}

	if len(docs) > 0 {
		if err := collection.AddDocuments(ctx, docs, 1); err != nil {
			os.RemoveAll(staging)
			return 0, fmt.Errorf("adding documents: %w", err)
		}
	}

	if err := os.RemoveAll(persistDir); err != nil {
		os.RemoveAll(staging)
		return 0, fmt.Errorf("removing previous index: %w", err)
	}
	if err := os.Rename(staging, persistDir); err != nil {
		return 0, fmt.Errorf("swapping index into place: %w", err)
	}

	b.logger.Info("index rebuilt", "kbDir", kbDir, "persistDir", persistDir, "chunks", len(chunks))
	return len(chunks), nil
}

// embedBatchSize bounds how many chunks go to the embedding service in
// one call.
const embedBatchSize = 16

// embedChunks embeds all chunks concurrently through the worker pool,
// one service call per batch, preserving chunk order in the returned
// documents.
func (b *Builder) embedChunks(ctx context.Context, chunks []core.Chunk) ([]chromem.Document, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(b.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	docs := make([]chromem.Document, len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		offset := start
		batch := chunks[offset:min(offset+embedBatchSize, len(chunks))]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			texts := make([]string, len(batch))
			for i, chunk := range batch {
				texts[i] = chunk.Content
			}
			var vectors [][]float32
			err := retryWithBackoff(ctx, func() error {
				var embedErr error
				vectors, embedErr = b.embedder.EmbedTexts(ctx, texts)
				return embedErr
			}, maxEmbedAttempts, embedRetryDelay)
			if err == nil && len(vectors) != len(batch) {
				err = fmt.Errorf("got %d vectors for %d texts", len(vectors), len(batch))
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("embedding chunks from %s: %w", batch[0].Source, err)
				}
				mu.Unlock()
				return
			}
			for i, chunk := range batch {
				docs[offset+i] = chromem.Document{
					ID:        chunkDocID(chunk, offset+i),
					Metadata:  map[string]string{"source": chunk.Source},
					Embedding: vectors[i],
					Content:   chunk.Content,
				}
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// chunkDocID derives a stable document ID from chunk identity plus its
// corpus position, so repeated paragraphs never collide.
func chunkDocID(chunk core.Chunk, position int) string {
	id := core.IDFromContent(chunk.Source + "\x00" + chunk.Content)
	return strconv.FormatUint(uint64(id), 16) + "-" + strconv.Itoa(position)
}
