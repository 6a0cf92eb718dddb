package domain

// Document is a source file read during a rebuild.
// Documents are read fresh on every build and are not retained
// beyond chunking.
type Document struct {
	// Source is the file path the content was read from.
	Source string

	// Content is the raw text content.
	Content string
}

// Chunk is a bounded text segment derived from one source document.
// It is the unit of embedding and retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Source is the path of the document this chunk was cut from.
	Source string

	// Offset is the start character index within the source document.
	Offset int

	// Text is the chunk content, bounded by the chunker window size.
	Text string
}
