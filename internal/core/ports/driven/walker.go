package driven

import (
	"context"

	"github.com/notedex/notedex-cli/internal/core/domain"
)

// FileWalker lists and reads text documents under a directory.
// The walk is recursive. Extensions are tried in order: the first
// extension that matches at least one file wins, and later extensions
// are ignored (so .md shadows .txt with the default list).
type FileWalker interface {
	// Walk returns the documents under dir for the first matching
	// extension, in deterministic (lexical path) order, along with the
	// extension that matched. It fails with domain.ErrDirectoryNotFound
	// if dir does not exist and domain.ErrEmptyCorpus if no extension
	// matches any file.
	Walk(ctx context.Context, dir string, exts []string) ([]domain.Document, string, error)
}

// FileWatcher reports filesystem changes under a directory, filtered to
// the extensions of interest. Used by watch mode to trigger rebuilds.
type FileWatcher interface {
	// Watch begins monitoring dir (recursively) and returns a channel of
	// changed file paths. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, dir string) (<-chan string, error)

	// Close stops the watcher and releases resources.
	Close() error
}
