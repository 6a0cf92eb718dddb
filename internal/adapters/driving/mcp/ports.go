package mcp

import (
	"github.com/notedex/notedex-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Index owns the shared index lifecycle.
	Index driving.IndexService

	// Query answers similarity queries.
	Query driving.QueryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Index == nil {
		return ErrMissingIndexService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
