// Package mcpserver exposes cardboard's read-only introspection surface
// (outputs, workspaces, views, daemon status) as MCP tools over stdio, the
// same way termtile's internal/mcp package exposed agent orchestration
// tools, but backed by the IPC query commands instead of tmux.
package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "cardboard"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for cardboard introspection.
type Server struct {
	mcpServer  *mcpsdk.Server
	socketPath string
}

// NewServer creates an MCP server that queries the daemon at socketPath
// (empty meaning the environment-derived default).
func NewServer(socketPath string) *Server {
	s := &Server{socketPath: socketPath}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{Name: ServerName, Version: ServerVersion},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_outputs",
		Description: "List the monitors currently registered with the cardboard compositor, each with its position, size, and the workspace index assigned to it.",
	}, s.handleListOutputs)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_workspaces",
		Description: "List every workspace the compositor has created, active or not, with its column count, view count, and the output it is shown on.",
	}, s.handleListWorkspaces)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_views",
		Description: "List every client surface the compositor is tracking, mapped or not, with its workspace, floating/fullscreen state, and geometry.",
	}, s.handleListViews)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the compositor's top-level status: output/workspace/view counts and the currently focused view, if any.",
	}, s.handleGetStatus)
}

func (s *Server) sendQuery(kind queryKind) (string, error) {
	reply, err := sendQueryCommand(kind, s.socketPath)
	if err != nil {
		return "", fmt.Errorf("mcpserver: query %s: %w", kind, err)
	}
	return reply, nil
}
