package driven

import (
	"context"

	"github.com/notedex/notedex-cli/internal/core/domain"
)

// VectorStore builds immutable index snapshots and answers k-nearest
// queries against them. Construction is O(n): a flat ordered list with a
// linear cosine scan is the required algorithm at this scale, not an
// approximate structure.
//
// The store itself is stateless; all state lives in the returned
// domain.Index, which callers publish and swap atomically.
type VectorStore interface {
	// Build constructs an index snapshot from (chunk, vector) pairs.
	// It fails with domain.ErrEmptyCorpus if entries is empty and with
	// *domain.DimensionMismatchError if vector lengths are inconsistent.
	Build(ctx context.Context, entries []domain.IndexEntry) (*domain.Index, error)

	// Search returns the top k entries of index by descending cosine
	// similarity to query, ties broken by insertion order. It fails with
	// domain.ErrInvalidQuery if k <= 0 and *domain.DimensionMismatchError
	// if the query length differs from the index dimension. If k exceeds
	// the index size, all entries are returned.
	Search(ctx context.Context, index *domain.Index, query []float32, k int) ([]domain.Hit, error)
}
