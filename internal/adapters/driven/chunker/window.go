// Package chunker provides document splitting adapters.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/notedex/notedex-cli/internal/core/domain"
	"github.com/notedex/notedex-cli/internal/core/ports/driven"
)

// Ensure WindowChunker implements the interface.
var _ driven.Chunker = (*WindowChunker)(nil)

// Default configuration values.
const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

// WindowChunker splits text into fixed-size character windows with
// overlap. Simple character-window splitting: boundaries may fall inside
// words, which is acceptable for the retrieval granularity targeted here.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker creates a chunker with the given window size and
// overlap in characters. Non-positive size falls back to DefaultSize;
// overlap is clamped below size so that every window makes progress.
func NewWindowChunker(size, overlap int) *WindowChunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 5
	}
	return &WindowChunker{size: size, overlap: overlap}
}

// Chunk splits one document into overlapping windows, in offset order.
// Whitespace-only content yields zero chunks.
func (c *WindowChunker) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	runes := []rune(doc.Content)
	step := c.size - c.overlap

	var chunks []domain.Chunk
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			ID:     uuid.NewString(),
			Source: doc.Source,
			Offset: start,
			Text:   string(runes[start:end]),
		})
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}

// Size returns the configured window size.
func (c *WindowChunker) Size() int { return c.size }

// Overlap returns the configured overlap.
func (c *WindowChunker) Overlap() int { return c.overlap }
