package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/brintopos/brintopos/internal/application"
)

// NewBrintoPOSMCPServer creates an MCP server exposing one till. The caller
// unlocks the POS gate before serving; admin and void tools check their own
// credentials per call.
func NewBrintoPOSMCPServer(till *application.TillService, dash *application.DashboardService) *server.MCPServer {
	s := server.NewMCPServer(
		"brintopos",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, till, dash)
	registerResources(s, till)

	return s
}
