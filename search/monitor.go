package search

import (
	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/index"
)

// RetrievalMonitor provides hooks to observe the retrieval pipeline.
// Implement this interface to track intermediate steps during a query.
type RetrievalMonitor interface {
	Start(query string)
	AfterVectorSearch(hits []index.Hit)
	VectorSearchFailed(err error)
	AfterLexicalScan(candidates []core.Chunk)
	AfterMerge(candidateCount int)
	CorpusFallback(chunkCount int)
	AfterRanking(topK []core.Snippet)
	GuaranteeApplied(stage string, chunk core.Chunk)
	Finish(results []core.Snippet)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterVectorSearch(_ []index.Hit)         {}
func (n *noopMonitor) VectorSearchFailed(_ error)              {}
func (n *noopMonitor) AfterLexicalScan(_ []core.Chunk)         {}
func (n *noopMonitor) AfterMerge(_ int)                        {}
func (n *noopMonitor) CorpusFallback(_ int)                    {}
func (n *noopMonitor) AfterRanking(_ []core.Snippet)           {}
func (n *noopMonitor) GuaranteeApplied(_ string, _ core.Chunk) {}
func (n *noopMonitor) Finish(_ []core.Snippet)                 {}
