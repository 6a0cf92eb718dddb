package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedex/notedex-cli/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDirectoryWalker_Walk_PrefersFirstExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "markdown note")
	writeFile(t, dir, "b.txt", "plain note")

	w := NewDirectoryWalker()
	docs, ext, err := w.Walk(context.Background(), dir, []string{".md", ".txt"})

	require.NoError(t, err)
	assert.Equal(t, ".md", ext)
	require.Len(t, docs, 1)
	assert.Equal(t, "markdown note", docs[0].Content)
}

func TestDirectoryWalker_Walk_FallsBackToNextExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "only.txt", "plain note")

	w := NewDirectoryWalker()
	docs, ext, err := w.Walk(context.Background(), dir, []string{".md", ".txt"})

	require.NoError(t, err)
	assert.Equal(t, ".txt", ext)
	require.Len(t, docs, 1)
	assert.Equal(t, "plain note", docs[0].Content)
}

func TestDirectoryWalker_Walk_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.md", "top")
	writeFile(t, dir, filepath.Join("sub", "nested.md"), "nested")

	w := NewDirectoryWalker()
	docs, _, err := w.Walk(context.Background(), dir, []string{".md"})

	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDirectoryWalker_Walk_LexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "second")
	writeFile(t, dir, "a.md", "first")
	writeFile(t, dir, "c.md", "third")

	w := NewDirectoryWalker()
	docs, _, err := w.Walk(context.Background(), dir, []string{".md"})

	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "first", docs[0].Content)
	assert.Equal(t, "second", docs[1].Content)
	assert.Equal(t, "third", docs[2].Content)
}

func TestDirectoryWalker_Walk_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "NOTE.MD", "upper case extension")

	w := NewDirectoryWalker()
	docs, ext, err := w.Walk(context.Background(), dir, []string{".md"})

	require.NoError(t, err)
	assert.Equal(t, ".md", ext)
	require.Len(t, docs, 1)
}

func TestDirectoryWalker_Walk_DirectoryNotFound(t *testing.T) {
	w := NewDirectoryWalker()

	_, _, err := w.Walk(context.Background(), "/does/not/exist", []string{".md"})

	assert.ErrorIs(t, err, domain.ErrDirectoryNotFound)
}

func TestDirectoryWalker_Walk_PathIsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "content")

	w := NewDirectoryWalker()
	_, _, err := w.Walk(context.Background(), path, []string{".md"})

	assert.ErrorIs(t, err, domain.ErrDirectoryNotFound)
}

func TestDirectoryWalker_Walk_EmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image.png", "not text")

	w := NewDirectoryWalker()
	_, _, err := w.Walk(context.Background(), dir, []string{".md", ".txt"})

	require.ErrorIs(t, err, domain.ErrEmptyCorpus)
	assert.Contains(t, err.Error(), ".md or .txt")
}

func TestDirectoryWalker_Walk_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewDirectoryWalker()
	_, _, err := w.Walk(ctx, dir, []string{".md"})

	assert.ErrorIs(t, err, context.Canceled)
}
