package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/brintopos/brintopos/internal/application"
	"github.com/brintopos/brintopos/internal/domain"
)

// registerResources registers read-only views of the POS screen. Invoice
// history sits behind the admin gate and is only reachable through tools.
func registerResources(s *server.MCPServer, till *application.TillService) {
	// 1. brintopos://menu - full menu
	s.AddResource(
		mcplib.NewResource(
			"brintopos://menu",
			"Menu",
			mcplib.WithResourceDescription("All menu items grouped in display order"),
			mcplib.WithMIMEType("application/json"),
		),
		staticResource("brintopos://menu", func() any { return till.Menu(domain.CategoryAll) }),
	)

	// 2. brintopos://order - order being built
	s.AddResource(
		mcplib.NewResource(
			"brintopos://order",
			"Current Order",
			mcplib.WithResourceDescription("Lines, table and running totals of the open order"),
			mcplib.WithMIMEType("application/json"),
		),
		staticResource("brintopos://order", func() any { return till.Order() }),
	)
}

func staticResource(uri string, view func() any) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonContents(uri, view())
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
