// Package walker provides filesystem document listing and change
// watching for the index pipeline.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/notedex/notedex-cli/internal/core/domain"
	"github.com/notedex/notedex-cli/internal/core/ports/driven"
	"github.com/notedex/notedex-cli/internal/logger"
)

// Ensure DirectoryWalker implements the interface.
var _ driven.FileWalker = (*DirectoryWalker)(nil)

// DirectoryWalker reads documents from a local directory tree.
type DirectoryWalker struct{}

// NewDirectoryWalker creates a directory walker.
func NewDirectoryWalker() *DirectoryWalker {
	return &DirectoryWalker{}
}

// Walk recursively collects files under dir for each extension in turn
// and reads the first non-empty match set. filepath.WalkDir visits paths
// in lexical order, which keeps document ordering deterministic.
func (w *DirectoryWalker) Walk(ctx context.Context, dir string, exts []string) ([]domain.Document, string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", domain.ErrDirectoryNotFound, dir)
		}
		return nil, "", fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("%w: %s is not a directory", domain.ErrDirectoryNotFound, dir)
	}

	for _, ext := range exts {
		paths, err := w.listPaths(ctx, dir, ext)
		if err != nil {
			return nil, "", err
		}
		if len(paths) == 0 {
			logger.Debug("No %s files under %s, trying next extension", ext, dir)
			continue
		}

		docs := make([]domain.Document, 0, len(paths))
		for _, path := range paths {
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, "", fmt.Errorf("read %s: %w", path, err)
			}
			docs = append(docs, domain.Document{
				Source:  path,
				Content: string(content),
			})
		}
		return docs, ext, nil
	}

	return nil, "", fmt.Errorf("%w: no %s files under %s",
		domain.ErrEmptyCorpus, strings.Join(exts, " or "), dir)
}

// listPaths collects all files with the given extension under dir.
func (w *DirectoryWalker) listPaths(ctx context.Context, dir, ext string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return paths, nil
}
