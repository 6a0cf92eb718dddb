package domain

// Hit is a single similarity match from the vector store.
type Hit struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the cosine similarity to the query vector.
	Score float64
}

// QueryResult is a ranked result returned to callers, with the chunk
// text reduced to a bounded preview.
type QueryResult struct {
	// Source is the path of the document the snippet came from.
	Source string

	// Snippet is the chunk text truncated to the preview length, with
	// newlines flattened to spaces.
	Snippet string

	// Score is the cosine similarity of the underlying chunk.
	Score float64

	// Truncated reports whether the snippet was cut short.
	Truncated bool
}
