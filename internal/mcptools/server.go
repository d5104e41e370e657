package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewDigestMCPServer creates an MCP server with the preview_digest and
// list_sections tools registered. version is reported to clients.
func NewDigestMCPServer(composer Composer, version string) *mcp.Server {
	svc := NewDigestService(composer)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "digest",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_digest",
		Description: "Compose today's digest (calendar, weather, AI news, talking pieces, history) and return the Telegram-ready chunks without sending them.",
	}, svc.PreviewDigest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sections",
		Description: "List the digest sections in the order they appear.",
	}, svc.ListSections)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
