package index

import "context"

// Hit is a single vector search result. Distance is an opaque score where
// lower means more similar; callers must not assume any particular scale.
type Hit struct {
	Content  string
	Source   string
	Distance float64
}

// Store is the vector similarity provider consumed by the retrieval
// engine. Implementations may fail (empty index, unreachable embedding
// service); the engine treats any error as "no vector candidates".
type Store interface {
	// Search returns up to k hits for the query, most similar first.
	Search(ctx context.Context, query string, k int) ([]Hit, error)
}
