// Package memory provides a flat in-memory vector store. Search is a
// brute-force cosine scan, which is the appropriate algorithm for the
// small-to-medium non-persistent corpora notedex targets.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/notedex/notedex-cli/internal/core/domain"
	"github.com/notedex/notedex-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store builds and searches immutable index snapshots. It holds no state
// of its own: every Build returns a self-contained domain.Index, so a
// snapshot handed to a query can never be mutated by a later rebuild.
type Store struct{}

// NewStore creates a new in-memory vector store.
func NewStore() *Store {
	return &Store{}
}

// Build constructs an index snapshot. Vectors are L2-normalised up front
// so that Search reduces to a dot product per entry.
func (s *Store) Build(_ context.Context, entries []domain.IndexEntry) (*domain.Index, error) {
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	dim := len(entries[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("build: zero-length embedding for chunk %s", entries[0].Chunk.ID)
	}

	built := make([]domain.IndexEntry, len(entries))
	sources := make(map[string]struct{})
	for i, entry := range entries {
		if len(entry.Vector) != dim {
			return nil, &domain.DimensionMismatchError{Want: dim, Got: len(entry.Vector)}
		}
		built[i] = domain.IndexEntry{
			Chunk:  entry.Chunk,
			Vector: normalize(entry.Vector),
		}
		sources[entry.Chunk.Source] = struct{}{}
	}

	return &domain.Index{
		ID:        uuid.NewString(),
		Dimension: dim,
		Documents: len(sources),
		BuiltAt:   time.Now(),
		Entries:   built,
	}, nil
}

// Search scores every entry by cosine similarity and returns the top k.
// The sort is stable, so ties keep their insertion order and repeated
// queries return identical orderings.
func (s *Store) Search(_ context.Context, index *domain.Index, query []float32, k int) ([]domain.Hit, error) {
	if index == nil {
		return nil, domain.ErrNotIndexed
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: result count must be positive, got %d", domain.ErrInvalidQuery, k)
	}
	if len(query) != index.Dimension {
		return nil, &domain.DimensionMismatchError{Want: index.Dimension, Got: len(query)}
	}

	q := normalize(query)

	hits := make([]domain.Hit, len(index.Entries))
	for i, entry := range index.Entries {
		hits[i] = domain.Hit{
			Chunk: entry.Chunk,
			Score: dot(entry.Vector, q),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// normalize returns an L2-normalised copy of v. A zero vector is
// returned as an equal-length zero copy.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := float32(math.Sqrt(sum))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// dot computes the dot product of two equal-length vectors. For
// normalised vectors this equals their cosine similarity.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
