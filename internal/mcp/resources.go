// ABOUTME: MCP resource implementations for the revenue store.
// ABOUTME: Provides the fde://month/current report resource.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/fde/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const currentMonthURI = "fde://month/current"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         currentMonthURI,
		Name:        "Current Month Report",
		Description: "Totals, delta, bonus and daily records for the current month",
		MIMEType:    "application/json",
	}, s.handleCurrentMonthResource)
}

func (s *Server) handleCurrentMonthResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	m, err := storage.BuildMonth(s.repo, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to build month: %w", err)
	}

	data, err := json.MarshalIndent(newMonthOutput(m), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      currentMonthURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
