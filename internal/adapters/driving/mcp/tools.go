package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/notedex/notedex-cli/internal/core/services"
)

// IndexInput is the input schema for the index_notes tool.
type IndexInput struct {
	Directory string `json:"directory" jsonschema:"the directory containing text files (.md, .txt) to index"`
}

// IndexOutput is the output schema for the index_notes tool.
type IndexOutput struct {
	Documents int    `json:"documents"`
	Chunks    int    `json:"chunks"`
	Summary   string `json:"summary"`
}

// QueryInput is the input schema for the query_notes tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the free-text query to search indexed notes for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 3)"`
}

// QueryOutput is the output schema for the query_notes tool.
type QueryOutput struct {
	Results []QueryResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// QueryResultOutput represents a single ranked result.
type QueryResultOutput struct {
	Source  string  `json:"source"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_notes",
		Description: "Index text files (.md, .txt) in the given directory for semantic search",
	}, s.handleIndex)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_notes",
		Description: "Search the indexed notes for the given query and return relevant snippets",
	}, s.handleQuery)
}

// handleIndex handles the index_notes tool invocation.
func (s *Server) handleIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexInput,
) (*mcp.CallToolResult, IndexOutput, error) {
	summary, err := s.ports.Index.Rebuild(ctx, input.Directory)
	if err != nil {
		return nil, IndexOutput{}, err
	}

	return nil, IndexOutput{
		Documents: summary.Documents,
		Chunks:    summary.Chunks,
		Summary:   summary.String(),
	}, nil
}

// handleQuery handles the query_notes tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = services.DefaultLimit
	}

	results, err := s.ports.Query.Query(ctx, input.Query, limit)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Results: make([]QueryResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = QueryResultOutput{
			Source:  results[i].Source,
			Snippet: results[i].Snippet,
			Score:   results[i].Score,
		}
	}

	return nil, output, nil
}
