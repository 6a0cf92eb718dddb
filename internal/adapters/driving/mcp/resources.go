package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for notedex resources.
const uriScheme = "notedex://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Current state of the semantic note index",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

// handleStatusResource reports the index lifecycle state and, when a
// snapshot is published, its size and build time.
func (s *Server) handleStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type statusInfo struct {
		State     string `json:"state"`
		Entries   int    `json:"entries,omitempty"`
		Documents int    `json:"documents,omitempty"`
		Dimension int    `json:"dimension,omitempty"`
		BuiltAt   string `json:"built_at,omitempty"`
	}

	info := statusInfo{State: s.ports.Index.State().String()}
	if snapshot, err := s.ports.Index.Snapshot(); err == nil {
		info.Entries = snapshot.Len()
		info.Documents = snapshot.Documents
		info.Dimension = snapshot.Dimension
		info.BuiltAt = snapshot.BuiltAt.Format(time.RFC3339)
	}

	data, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("marshal status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
