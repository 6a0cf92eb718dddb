package domain

import (
	"fmt"
	"time"
)

// IndexState describes the lifecycle of the shared index.
type IndexState int

const (
	// IndexStateEmpty means no index has ever been built.
	IndexStateEmpty IndexState = iota

	// IndexStateBuilding means a rebuild is in progress. Any previously
	// published index remains queryable until the new one is swapped in.
	IndexStateBuilding

	// IndexStateReady means a usable snapshot is published.
	IndexStateReady
)

// String returns the human-readable state name.
func (s IndexState) String() string {
	switch s {
	case IndexStateEmpty:
		return "empty"
	case IndexStateBuilding:
		return "building"
	case IndexStateReady:
		return "ready"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// IndexEntry pairs a chunk with its embedding vector.
type IndexEntry struct {
	// Chunk is the chunk metadata and text.
	Chunk Chunk

	// Vector is the embedding, L2-normalised at build time.
	Vector []float32
}

// Index is the complete, atomically-published set of entries searchable
// at a point in time. It is built from one directory scan, replaced
// wholesale on rebuild and never mutated incrementally. A query that
// holds a reference to an Index sees an internally consistent snapshot.
type Index struct {
	// ID uniquely identifies this snapshot.
	ID string

	// Dimension is the embedding vector length shared by every entry.
	Dimension int

	// Documents is the number of distinct source documents indexed.
	Documents int

	// BuiltAt is when the snapshot was constructed.
	BuiltAt time.Time

	// Entries holds the (chunk, vector) pairs in insertion order:
	// document order, then offset order.
	Entries []IndexEntry
}

// Len returns the number of entries in the snapshot.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.Entries)
}

// RebuildSummary reports the outcome of a successful rebuild.
type RebuildSummary struct {
	// Directory is the indexed directory path.
	Directory string

	// Extension is the file extension that matched (e.g. ".md").
	Extension string

	// Documents is the number of documents indexed.
	Documents int

	// Chunks is the number of chunks embedded.
	Chunks int

	// Dimension is the embedding vector length.
	Dimension int

	// Duration is the wall-clock time the rebuild took.
	Duration time.Duration
}

// String renders the summary as a single human-readable line.
func (s *RebuildSummary) String() string {
	return fmt.Sprintf("indexed %d documents (%d chunks, %s, dimension %d) from %s in %s",
		s.Documents, s.Chunks, s.Extension, s.Dimension, s.Directory, s.Duration.Round(time.Millisecond))
}
