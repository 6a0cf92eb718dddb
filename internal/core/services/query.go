package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/notedex/notedex-cli/internal/core/domain"
	"github.com/notedex/notedex-cli/internal/core/ports/driven"
	"github.com/notedex/notedex-cli/internal/core/ports/driving"
	"github.com/notedex/notedex-cli/internal/logger"
)

// Ensure QueryEngine implements the interface.
var _ driving.QueryService = (*QueryEngine)(nil)

const (
	// DefaultLimit is the result count when callers pass no limit.
	DefaultLimit = 3

	// SnippetLength is the maximum snippet preview length in characters.
	SnippetLength = 500

	// ellipsis marks a truncated snippet.
	ellipsis = "..."
)

// QueryEngine embeds a query string, ranks the current snapshot and
// formats results. Formatting is presentation-only and never alters the
// ranking order produced by the store.
type QueryEngine struct {
	index    driving.IndexService
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewQueryEngine creates a query engine over the given index service.
func NewQueryEngine(
	index driving.IndexService,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
) *QueryEngine {
	return &QueryEngine{
		index:    index,
		embedder: embedder,
		store:    store,
	}
}

// Query validates text, embeds it and returns the top k ranked results.
func (e *QueryEngine) Query(ctx context.Context, text string, k int) ([]domain.QueryResult, error) {
	logger.Section("Query Execution")
	logger.Debug("Query: %q, k=%d", text, k)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty query text", domain.ErrInvalidQuery)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: result count must be positive, got %d", domain.ErrInvalidQuery, k)
	}

	// Take the published snapshot at the moment of the call. A rebuild
	// running concurrently cannot change what this query observes.
	snapshot, err := e.index.Snapshot()
	if err != nil {
		return nil, err
	}
	logger.Debug("Snapshot %s: %d entries, dimension %d", snapshot.ID, snapshot.Len(), snapshot.Dimension)

	vector, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return nil, e.asEmbeddingError(err)
	}

	hits, err := e.store.Search(ctx, snapshot, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Search returned %d hits", len(hits))

	results := make([]domain.QueryResult, len(hits))
	for i, hit := range hits {
		snippet, truncated := previewSnippet(hit.Chunk.Text)
		results[i] = domain.QueryResult{
			Source:    hit.Chunk.Source,
			Snippet:   snippet,
			Score:     hit.Score,
			Truncated: truncated,
		}
	}
	return results, nil
}

// previewSnippet flattens newlines and truncates to SnippetLength
// characters, appending an ellipsis marker when content was cut.
func previewSnippet(text string) (string, bool) {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= SnippetLength {
		return text, false
	}
	return string(runes[:SnippetLength]) + ellipsis, true
}

// asEmbeddingError wraps backend failures in the domain taxonomy unless
// the adapter already did.
func (e *QueryEngine) asEmbeddingError(err error) error {
	var embErr *domain.EmbeddingError
	if errors.As(err, &embErr) {
		return err
	}
	return &domain.EmbeddingError{Model: e.embedder.ModelName(), Err: err}
}
