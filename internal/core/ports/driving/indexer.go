package driving

import (
	"context"

	"github.com/notedex/notedex-cli/internal/core/domain"
)

// IndexService owns the process-wide shared index and its lifecycle.
type IndexService interface {
	// Rebuild runs the full scan-chunk-embed-build pipeline for dir and
	// atomically publishes the resulting snapshot. On failure the prior
	// snapshot (if any) stays published. A rebuild issued while another
	// is running fails with domain.ErrRebuildInProgress.
	Rebuild(ctx context.Context, dir string) (*domain.RebuildSummary, error)

	// State reports the current lifecycle state. No side effects.
	State() domain.IndexState

	// Snapshot returns the currently published index, or
	// domain.ErrNotIndexed if none has been built yet. The returned
	// snapshot is immutable and safe to search without further locking.
	Snapshot() (*domain.Index, error)
}
