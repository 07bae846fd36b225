// Package vector provides an in-memory vector index and similarity search.
package vector

import "context"

// VectorIndex defines vector storage and similarity search. An index holds the
// vectors for exactly one transcript at a time; a new video gets a new index.
type VectorIndex interface {
	Add(ctx context.Context, ids []string, vectors [][]float32) error
	Search(ctx context.Context, query []float32, k int) ([]*VectorResult, error)
	Size() int
	Close() error
}

// VectorResult is a single vector search hit (ID is the chunk ID).
type VectorResult struct {
	ID    string
	Score float64 // Inner product; cosine similarity for normalized vectors
}
