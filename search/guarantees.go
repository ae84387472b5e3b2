package search

import (
	"strings"

	"github.com/soutienhq/soutien/lexical"
)

// guaranteeStage is a deterministic post-processing rule: given the full
// ranked candidate list and a provisional top-k, it returns a possibly
// amended top-k. Stages are pure and never mutate their inputs, so each
// can be tested in isolation and chained in order.
type guaranteeStage struct {
	name  string
	apply func(ranked, top []candidate) []candidate
}

// ensureProcedural guarantees that the top-k carries at least one
// numbered-step chunk when the ranked list has one that is lexically
// relevant to the query. Without it, short canonical procedures can be
// buried under longer, more lexically diffuse chunks.
func ensureProcedural(k int) guaranteeStage {
	return guaranteeStage{
		name: "procedural",
		apply: func(ranked, top []candidate) []candidate {
			for _, c := range top {
				if hasNumberedStep(c.chunk.Content) {
					return top
				}
			}
			for _, c := range ranked {
				if hasNumberedStep(c.chunk.Content) && c.lexical > 0 {
					return spliceIn(top, c, k)
				}
			}
			return top
		},
	}
}

// ensureAnchorPhrase guarantees that the first ranked chunk containing the
// phrase (case- and accent-insensitive) makes the top-k, when any ranked
// chunk contains it at all.
func ensureAnchorPhrase(phrase string, k int) guaranteeStage {
	folded := lexical.Fold(phrase)
	return guaranteeStage{
		name: "anchor:" + phrase,
		apply: func(ranked, top []candidate) []candidate {
			for _, c := range top {
				if strings.Contains(lexical.Fold(c.chunk.Content), folded) {
					return top
				}
			}
			for _, c := range ranked {
				if strings.Contains(lexical.Fold(c.chunk.Content), folded) {
					return spliceIn(top, c, k)
				}
			}
			return top
		},
	}
}

// spliceIn inserts c into top under the replace-last-or-append rule,
// skipping the insert when c is already present by (content, source)
// identity. The input slice is left untouched.
func spliceIn(top []candidate, c candidate, k int) []candidate {
	for _, t := range top {
		if t.chunk == c.chunk {
			return top
		}
	}
	out := make([]candidate, len(top))
	copy(out, top)
	if len(out) == k {
		out[len(out)-1] = c
		return out
	}
	return append(out, c)
}
