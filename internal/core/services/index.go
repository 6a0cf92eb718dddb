package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/notedex/notedex-cli/internal/core/domain"
	"github.com/notedex/notedex-cli/internal/core/ports/driven"
	"github.com/notedex/notedex-cli/internal/core/ports/driving"
	"github.com/notedex/notedex-cli/internal/logger"
)

// Ensure IndexManager implements the interface.
var _ driving.IndexService = (*IndexManager)(nil)

// DefaultExtensions is the extension preference order when none is
// configured: .md first, .txt only when no .md files matched.
var DefaultExtensions = []string{".md", ".txt"}

// IndexManager owns the single shared index instance and coordinates
// build-vs-query access.
//
// A rebuild constructs the entire new index off to the side and publishes
// it with a pointer swap under mu, so queries against the old snapshot
// are never blocked for the duration of chunking and embedding work.
// A rebuild issued while another is running is rejected, not queued.
type IndexManager struct {
	walker     driven.FileWalker
	chunker    driven.Chunker
	embedder   driven.EmbeddingService
	store      driven.VectorStore
	extensions []string

	// building rejects concurrent rebuilds without holding mu across the
	// whole pipeline.
	building atomic.Bool

	// mu guards index and state. It is held only for reads and for the
	// publish swap, never for the build itself.
	mu    sync.RWMutex
	index *domain.Index
	state domain.IndexState
}

// NewIndexManager creates an index manager. If extensions is empty,
// DefaultExtensions is used.
func NewIndexManager(
	walker driven.FileWalker,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	extensions []string,
) *IndexManager {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &IndexManager{
		walker:     walker,
		chunker:    chunker,
		embedder:   embedder,
		store:      store,
		extensions: extensions,
		state:      domain.IndexStateEmpty,
	}
}

// Rebuild runs the full scan-chunk-embed-build pipeline and atomically
// publishes the new snapshot. On any failure the previously published
// snapshot (if any) stays in place and the prior state is restored.
func (m *IndexManager) Rebuild(ctx context.Context, dir string) (*domain.RebuildSummary, error) {
	if !m.building.CompareAndSwap(false, true) {
		return nil, domain.ErrRebuildInProgress
	}
	defer m.building.Store(false)

	logger.Section("Index Rebuild")
	logger.Info("Rebuilding index from %s", dir)

	m.setState(domain.IndexStateBuilding)

	summary, index, err := m.build(ctx, dir)
	if err != nil {
		m.restorePriorState()
		return nil, err
	}

	m.publish(index)
	logger.Info("Rebuild complete: %s", summary)
	return summary, nil
}

// State reports the current lifecycle state.
func (m *IndexManager) State() domain.IndexState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Snapshot returns the currently published index. During a rebuild this
// is the old snapshot until the moment the new one is swapped in, so a
// caller always observes a complete index, never a partial one.
func (m *IndexManager) Snapshot() (*domain.Index, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.index == nil {
		return nil, domain.ErrNotIndexed
	}
	return m.index, nil
}

// build runs the pipeline without touching the published index.
func (m *IndexManager) build(ctx context.Context, dir string) (*domain.RebuildSummary, *domain.Index, error) {
	start := time.Now()

	docs, ext, err := m.walker.Walk(ctx, dir, m.extensions)
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	logger.Debug("Walked %d documents (%s) under %s", len(docs), ext, dir)

	chunks := make([]domain.Chunk, 0, len(docs))
	for _, doc := range docs {
		cs, err := m.chunker.Chunk(doc)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk %s: %w", doc.Source, err)
		}
		chunks = append(chunks, cs...)
	}
	if len(chunks) == 0 {
		return nil, nil, fmt.Errorf("%w: all matching files under %s are empty", domain.ErrEmptyCorpus, dir)
	}
	logger.Debug("Produced %d chunks", len(chunks))

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	vectors, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, nil, m.asEmbeddingError(err)
	}
	if len(vectors) != len(chunks) {
		return nil, nil, &domain.EmbeddingError{
			Model: m.embedder.ModelName(),
			Err:   fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks)),
		}
	}

	want := m.embedder.Dimensions()
	entries := make([]domain.IndexEntry, len(chunks))
	for i := range chunks {
		if want > 0 && len(vectors[i]) != want {
			return nil, nil, &domain.DimensionMismatchError{Want: want, Got: len(vectors[i])}
		}
		entries[i] = domain.IndexEntry{Chunk: chunks[i], Vector: vectors[i]}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	index, err := m.store.Build(ctx, entries)
	if err != nil {
		return nil, nil, fmt.Errorf("build index: %w", err)
	}

	summary := &domain.RebuildSummary{
		Directory: dir,
		Extension: ext,
		Documents: len(docs),
		Chunks:    len(chunks),
		Dimension: index.Dimension,
		Duration:  time.Since(start),
	}
	return summary, index, nil
}

// publish swaps in the new snapshot. The lock is held only for the swap.
func (m *IndexManager) publish(index *domain.Index) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.index = index
	m.state = domain.IndexStateReady
}

// restorePriorState returns to Ready when an old snapshot exists,
// otherwise to Empty. Called after a failed build.
func (m *IndexManager) restorePriorState() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index != nil {
		m.state = domain.IndexStateReady
	} else {
		m.state = domain.IndexStateEmpty
	}
}

// setState updates the lifecycle state.
func (m *IndexManager) setState(s domain.IndexState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// asEmbeddingError wraps backend failures in the domain taxonomy unless
// the adapter already did.
func (m *IndexManager) asEmbeddingError(err error) error {
	var embErr *domain.EmbeddingError
	if errors.As(err, &embErr) {
		return err
	}
	return &domain.EmbeddingError{Model: m.embedder.ModelName(), Err: err}
}
