package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedex/notedex-cli/internal/core/domain"
)

func entry(id string, vector ...float32) domain.IndexEntry {
	return domain.IndexEntry{
		Chunk:  domain.Chunk{ID: id, Source: id + ".md", Text: "text " + id},
		Vector: vector,
	}
}

func TestStore_Build_Success(t *testing.T) {
	store := NewStore()

	index, err := store.Build(context.Background(), []domain.IndexEntry{
		entry("a", 1, 0),
		entry("b", 0, 1),
	})

	require.NoError(t, err)
	require.NotNil(t, index)
	assert.NotEmpty(t, index.ID)
	assert.Equal(t, 2, index.Dimension)
	assert.Equal(t, 2, index.Documents)
	assert.Equal(t, 2, index.Len())
	assert.False(t, index.BuiltAt.IsZero())
}

func TestStore_Build_NormalisesVectors(t *testing.T) {
	store := NewStore()

	index, err := store.Build(context.Background(), []domain.IndexEntry{
		entry("a", 3, 4),
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.6, index.Entries[0].Vector[0], 1e-6)
	assert.InDelta(t, 0.8, index.Entries[0].Vector[1], 1e-6)
}

func TestStore_Build_CountsDistinctSources(t *testing.T) {
	store := NewStore()

	a1 := entry("a1", 1, 0)
	a2 := entry("a2", 0, 1)
	a2.Chunk.Source = a1.Chunk.Source

	index, err := store.Build(context.Background(), []domain.IndexEntry{a1, a2})

	require.NoError(t, err)
	assert.Equal(t, 1, index.Documents)
	assert.Equal(t, 2, index.Len())
}

func TestStore_Build_EmptyCorpus(t *testing.T) {
	store := NewStore()

	_, err := store.Build(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestStore_Build_DimensionMismatch(t *testing.T) {
	store := NewStore()

	_, err := store.Build(context.Background(), []domain.IndexEntry{
		entry("a", 1, 0),
		entry("b", 1, 0, 0),
	})

	var dimErr *domain.DimensionMismatchError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 2, dimErr.Want)
	assert.Equal(t, 3, dimErr.Got)
}

func TestStore_Search_RanksByCosine(t *testing.T) {
	store := NewStore()
	index, err := store.Build(context.Background(), []domain.IndexEntry{
		entry("a", 1, 0),
		entry("b", 0, 1),
		entry("c", 0.9, 0.1),
	})
	require.NoError(t, err)

	hits, err := store.Search(context.Background(), index, []float32{1, 0}, 2)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].Chunk.ID)
	assert.Equal(t, "c", hits[1].Chunk.ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
}

func TestStore_Search_StableTieOrder(t *testing.T) {
	store := NewStore()
	index, err := store.Build(context.Background(), []domain.IndexEntry{
		entry("first", 1, 0),
		entry("second", 1, 0),
		entry("third", 1, 0),
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		hits, err := store.Search(context.Background(), index, []float32{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)
		assert.Equal(t, "first", hits[0].Chunk.ID)
		assert.Equal(t, "second", hits[1].Chunk.ID)
		assert.Equal(t, "third", hits[2].Chunk.ID)
	}
}

func TestStore_Search_ClampsKToIndexSize(t *testing.T) {
	store := NewStore()
	index, err := store.Build(context.Background(), []domain.IndexEntry{
		entry("a", 1, 0),
		entry("b", 0, 1),
	})
	require.NoError(t, err)

	hits, err := store.Search(context.Background(), index, []float32{1, 0}, 10)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestStore_Search_NilIndex(t *testing.T) {
	store := NewStore()

	_, err := store.Search(context.Background(), nil, []float32{1, 0}, 1)

	assert.ErrorIs(t, err, domain.ErrNotIndexed)
}

func TestStore_Search_InvalidK(t *testing.T) {
	store := NewStore()
	index, err := store.Build(context.Background(), []domain.IndexEntry{entry("a", 1, 0)})
	require.NoError(t, err)

	_, err = store.Search(context.Background(), index, []float32{1, 0}, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestStore_Search_QueryDimensionMismatch(t *testing.T) {
	store := NewStore()
	index, err := store.Build(context.Background(), []domain.IndexEntry{entry("a", 1, 0)})
	require.NoError(t, err)

	_, err = store.Search(context.Background(), index, []float32{1, 0, 0}, 1)

	var dimErr *domain.DimensionMismatchError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 2, dimErr.Want)
	assert.Equal(t, 3, dimErr.Got)
}

func TestStore_Search_ZeroQueryVector(t *testing.T) {
	store := NewStore()
	index, err := store.Build(context.Background(), []domain.IndexEntry{entry("a", 1, 0)})
	require.NoError(t, err)

	hits, err := store.Search(context.Background(), index, []float32{0, 0}, 1)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 0.0, hits[0].Score)
}
