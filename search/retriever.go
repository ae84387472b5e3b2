// Copyright 2025 Soutien Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/index"
	"github.com/soutienhq/soutien/kb"
	"github.com/soutienhq/soutien/lexical"
)

const (
	// DefaultTopK is the number of snippets returned per query.
	DefaultTopK = 3

	// minVectorFetch is the floor on how many hits are requested from the
	// vector index, so small top-k values still see enough candidates for
	// the fusion and guarantee stages to work with.
	minVectorFetch = 5

	// worstDistance is the sentinel vector distance for candidates that
	// only the lexical scan (or the corpus fallback) produced.
	worstDistance = 1e9
)

// defaultAnchorPhrases are the phrases the guarantee stages pin into the
// top-k whenever the corpus carries them.
var defaultAnchorPhrases = []string{"lien de réinitialisation"}

// candidate is a chunk with its fused retrieval signals.
type candidate struct {
	chunk     core.Chunk
	lexical   int
	vector    float64
	composite float64
}

// Retriever answers queries by fusing vector hits with a lexical scan of
// the chunked knowledge base.
type Retriever struct {
	store       index.Store
	kbDir       string
	maxChunkLen int
	topK        int
	anchors     []string
	logger      *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets the logger used for degraded-mode warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTopK sets how many snippets a query returns.
func WithTopK(k int) Option {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithAnchorPhrases replaces the default anchor phrase set.
func WithAnchorPhrases(phrases ...string) Option {
	return func(r *Retriever) {
		r.anchors = phrases
	}
}

// WithMaxChunkLen sets the chunking limit used for the lexical scan. It
// must match the limit the index was built with, or the two candidate
// streams will disagree on chunk identity.
func WithMaxChunkLen(n int) Option {
	return func(r *Retriever) {
		if n > 0 {
			r.maxChunkLen = n
		}
	}
}

// NewRetriever creates a Retriever over the given vector store and
// knowledge-base directory.
func NewRetriever(store index.Store, kbDir string, opts ...Option) (*Retriever, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if kbDir == "" {
		return nil, ErrKBDirRequired
	}

	r := &Retriever{
		store:       store,
		kbDir:       kbDir,
		maxChunkLen: kb.DefaultMaxChunkLen,
		topK:        DefaultTopK,
		anchors:     defaultAnchorPhrases,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Retrieve returns the top snippets for query.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]core.Snippet, error) {
	return r.RetrieveWithMonitor(ctx, query, &noopMonitor{})
}

// RetrieveWithMonitor runs the retrieval pipeline, reporting each
// intermediate step to monitor.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, monitor RetrievalMonitor) ([]core.Snippet, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	fetch := r.topK
	if fetch < minVectorFetch {
		fetch = minVectorFetch
	}
	hits, err := r.store.Search(ctx, query, fetch)
	if err != nil {
		// Vector failures degrade the query, they never fail it.
		r.logger.Warn("vector search failed, continuing lexical-only", "error", err)
		monitor.VectorSearchFailed(err)
		hits = nil
	} else {
		monitor.AfterVectorSearch(hits)
	}

	chunks, err := kb.ReadCorpus(r.kbDir, r.maxChunkLen)
	if err != nil {
		return nil, err
	}
	monitor.AfterLexicalScan(chunks)

	merged := make(map[core.Chunk]*candidate)
	fuse := func(c core.Chunk) *candidate {
		if cand, ok := merged[c]; ok {
			return cand
		}
		cand := &candidate{chunk: c, lexical: 0, vector: worstDistance}
		merged[c] = cand
		return cand
	}

	for _, h := range hits {
		cand := fuse(core.Chunk{Content: h.Content, Source: h.Source})
		if h.Distance < cand.vector {
			cand.vector = h.Distance
		}
	}
	for _, c := range chunks {
		score := lexical.Score(query, c.Content)
		if score > 0 && hasNumberedStep(c.Content) {
			score++
		}
		if score <= 0 {
			continue
		}
		cand := fuse(c)
		if score > cand.lexical {
			cand.lexical = score
		}
	}
	monitor.AfterMerge(len(merged))

	ranked := make([]candidate, 0, len(merged))
	for _, cand := range merged {
		ranked = append(ranked, *cand)
	}
	if len(ranked) == 0 && len(chunks) > 0 {
		// Nothing matched either signal: surface the corpus anyway, at
		// the worst possible score, rather than answer with nothing.
		monitor.CorpusFallback(len(chunks))
		for _, c := range chunks {
			ranked = append(ranked, candidate{chunk: c, lexical: 0, vector: worstDistance})
		}
	}
	for i := range ranked {
		ranked[i].composite = (1 - float64(ranked[i].lexical)) + ranked[i].vector
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.lexical != b.lexical {
			return a.lexical > b.lexical
		}
		if a.composite != b.composite {
			return a.composite < b.composite
		}
		if a.chunk.Source != b.chunk.Source {
			return a.chunk.Source < b.chunk.Source
		}
		return a.chunk.Content < b.chunk.Content
	})

	top := ranked
	if len(top) > r.topK {
		top = top[:r.topK]
	}
	monitor.AfterRanking(toSnippets(top))

	stages := []guaranteeStage{ensureProcedural(r.topK)}
	for _, phrase := range r.anchors {
		stages = append(stages, ensureAnchorPhrase(phrase, r.topK))
	}
	for _, stage := range stages {
		amended := stage.apply(ranked, top)
		if changed, chunk := topChanged(top, amended); changed {
			monitor.GuaranteeApplied(stage.name, chunk)
		}
		top = amended
	}

	results := toSnippets(top)
	monitor.Finish(results)
	return results, nil
}

// topChanged reports whether a guarantee stage amended the top-k, and the
// chunk it spliced in. Stages only ever replace or append the final slot.
func topChanged(before, after []candidate) (bool, core.Chunk) {
	if len(after) != len(before) {
		return true, after[len(after)-1].chunk
	}
	if len(after) > 0 && after[len(after)-1].chunk != before[len(before)-1].chunk {
		return true, after[len(after)-1].chunk
	}
	return false, core.Chunk{}
}

func toSnippets(cands []candidate) []core.Snippet {
	out := make([]core.Snippet, 0, len(cands))
	for _, c := range cands {
		out = append(out, core.Snippet{
			Content: c.chunk.Content,
			Source:  c.chunk.Source,
			Score:   c.composite,
		})
	}
	return out
}
