package driven

import (
	"github.com/notedex/notedex-cli/internal/core/domain"
)

// Chunker splits document text into bounded, overlapping segments.
// Chunks are produced in offset order and the split is deterministic:
// the same document always yields the same chunks (modulo generated IDs).
// An empty or whitespace-only document yields zero chunks.
type Chunker interface {
	// Chunk splits one document into chunks. It has no side effects.
	Chunk(doc domain.Document) ([]domain.Chunk, error)
}
