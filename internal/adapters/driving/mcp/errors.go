// Package mcp provides an MCP (Model Context Protocol) server adapter
// for notedex. It lets AI assistants index a notes directory and run
// semantic queries against it.
package mcp

import "errors"

// ErrMissingIndexService is returned when the index service is not provided.
var ErrMissingIndexService = errors.New("mcp: index service is required")

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
