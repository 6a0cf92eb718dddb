package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedex/notedex-cli/internal/core/domain"
)

// fakeIndexService records rebuild calls and serves a fixed snapshot.
type fakeIndexService struct {
	summary *domain.RebuildSummary
	index   *domain.Index
	err     error

	lastDir string
}

func (s *fakeIndexService) Rebuild(_ context.Context, dir string) (*domain.RebuildSummary, error) {
	s.lastDir = dir
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func (s *fakeIndexService) State() domain.IndexState {
	if s.index == nil {
		return domain.IndexStateEmpty
	}
	return domain.IndexStateReady
}

func (s *fakeIndexService) Snapshot() (*domain.Index, error) {
	if s.index == nil {
		return nil, domain.ErrNotIndexed
	}
	return s.index, nil
}

// fakeQueryService returns fixed results and records the requested limit.
type fakeQueryService struct {
	results []domain.QueryResult
	err     error

	lastText  string
	lastLimit int
}

func (s *fakeQueryService) Query(_ context.Context, text string, k int) ([]domain.QueryResult, error) {
	s.lastText = text
	s.lastLimit = k
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func newTestPorts() (*Ports, *fakeIndexService, *fakeQueryService) {
	index := &fakeIndexService{
		summary: &domain.RebuildSummary{
			Directory: "/notes",
			Extension: ".md",
			Documents: 3,
			Chunks:    9,
			Dimension: 384,
		},
	}
	query := &fakeQueryService{
		results: []domain.QueryResult{
			{Source: "/notes/a.md", Snippet: "alpha", Score: 0.92},
			{Source: "/notes/b.md", Snippet: "beta", Score: 0.78},
		},
	}
	return &Ports{Index: index, Query: query}, index, query
}

func TestPorts_Validate(t *testing.T) {
	ports, _, _ := newTestPorts()
	assert.NoError(t, ports.Validate())

	missing := &Ports{Query: ports.Query}
	assert.ErrorIs(t, missing.Validate(), ErrMissingIndexService)

	missing = &Ports{Index: ports.Index}
	assert.ErrorIs(t, missing.Validate(), ErrMissingQueryService)
}

func TestNewServer_RequiresPorts(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.Error(t, err)

	ports, _, _ := newTestPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestServer_HandleIndex(t *testing.T) {
	ports, index, _ := newTestPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleIndex(context.Background(), nil, IndexInput{Directory: "/notes"})

	require.NoError(t, err)
	assert.Equal(t, "/notes", index.lastDir)
	assert.Equal(t, 3, output.Documents)
	assert.Equal(t, 9, output.Chunks)
	assert.Contains(t, output.Summary, "3 documents")
}

func TestServer_HandleIndex_Error(t *testing.T) {
	ports, index, _ := newTestPorts()
	index.err = domain.ErrDirectoryNotFound
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleIndex(context.Background(), nil, IndexInput{Directory: "/missing"})

	assert.ErrorIs(t, err, domain.ErrDirectoryNotFound)
}

func TestServer_HandleQuery(t *testing.T) {
	ports, _, query := newTestPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleQuery(context.Background(), nil, QueryInput{Query: "alpha", Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, "alpha", query.lastText)
	assert.Equal(t, 2, query.lastLimit)
	require.Len(t, output.Results, 2)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, "/notes/a.md", output.Results[0].Source)
	assert.Equal(t, "alpha", output.Results[0].Snippet)
	assert.InDelta(t, 0.92, output.Results[0].Score, 1e-9)
}

func TestServer_HandleQuery_DefaultLimit(t *testing.T) {
	ports, _, query := newTestPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleQuery(context.Background(), nil, QueryInput{Query: "alpha"})

	require.NoError(t, err)
	assert.Equal(t, 3, query.lastLimit)
}

func TestServer_HandleQuery_NotIndexed(t *testing.T) {
	ports, _, query := newTestPorts()
	query.err = domain.ErrNotIndexed
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleQuery(context.Background(), nil, QueryInput{Query: "alpha"})

	assert.ErrorIs(t, err, domain.ErrNotIndexed)
}

func TestServer_HandleStatusResource_Empty(t *testing.T) {
	ports, _, _ := newTestPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	req := &sdk.ReadResourceRequest{
		Params: &sdk.ReadResourceParams{URI: uriScheme + "status"},
	}
	result, err := server.handleStatusResource(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
	assert.Equal(t, "empty", info["state"])
}

func TestServer_HandleStatusResource_Ready(t *testing.T) {
	ports, index, _ := newTestPorts()
	index.index = &domain.Index{
		ID:        "snapshot-1",
		Dimension: 384,
		Documents: 3,
		BuiltAt:   time.Now(),
		Entries:   make([]domain.IndexEntry, 9),
	}
	server, err := NewServer(ports)
	require.NoError(t, err)

	req := &sdk.ReadResourceRequest{
		Params: &sdk.ReadResourceParams{URI: uriScheme + "status"},
	}
	result, err := server.handleStatusResource(context.Background(), req)

	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
	assert.Equal(t, "ready", info["state"])
	assert.Equal(t, float64(9), info["entries"])
	assert.Equal(t, float64(3), info["documents"])
	assert.Equal(t, float64(384), info["dimension"])
}

var errBackend = errors.New("backend down")

func TestServer_HandleQuery_BackendError(t *testing.T) {
	ports, _, query := newTestPorts()
	query.err = &domain.EmbeddingError{Model: "all-minilm", Err: errBackend}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleQuery(context.Background(), nil, QueryInput{Query: "alpha"})

	assert.ErrorIs(t, err, errBackend)
}
