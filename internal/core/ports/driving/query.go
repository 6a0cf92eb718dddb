package driving

import (
	"context"

	"github.com/notedex/notedex-cli/internal/core/domain"
)

// QueryService answers similarity queries against the published index.
type QueryService interface {
	// Query embeds text, ranks the current snapshot and returns the top
	// k results with bounded snippets. It fails with
	// domain.ErrInvalidQuery for empty text or k <= 0 and with
	// domain.ErrNotIndexed when no snapshot is published.
	Query(ctx context.Context, text string, k int) ([]domain.QueryResult, error)
}
