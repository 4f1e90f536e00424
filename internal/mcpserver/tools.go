package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cardboardwm/cardboard/internal/command"
	"github.com/cardboardwm/cardboard/internal/ipc"
)

// queryKind names one of the four read-only query commands for logging.
type queryKind string

const (
	queryListOutputs    queryKind = "list_outputs"
	queryListWorkspaces queryKind = "list_workspaces"
	queryListViews      queryKind = "list_views"
	queryGetStatus      queryKind = "get_status"
)

func (k queryKind) String() string { return string(k) }

func (k queryKind) data() *command.Data {
	switch k {
	case queryListOutputs:
		return &command.Data{Kind: command.KindListOutputs}
	case queryListWorkspaces:
		return &command.Data{Kind: command.KindListWorkspaces}
	case queryListViews:
		return &command.Data{Kind: command.KindListViews}
	default:
		return &command.Data{Kind: command.KindGetStatus}
	}
}

// sendQueryCommand is a package-level seam so tests can stub the IPC
// round-trip without a live daemon.
var sendQueryCommand = func(kind queryKind, socketPath string) (string, error) {
	return ipc.Send(kind.data(), socketPath)
}

func (s *Server) handleListOutputs(_ context.Context, _ *mcpsdk.CallToolRequest, _ emptyInput) (*mcpsdk.CallToolResult, ListOutputsOutput, error) {
	reply, err := s.sendQuery(queryListOutputs)
	if err != nil {
		return nil, ListOutputsOutput{}, err
	}
	var out ListOutputsOutput
	if err := json.Unmarshal([]byte(reply), &out.Outputs); err != nil {
		return nil, ListOutputsOutput{}, fmt.Errorf("mcpserver: decode list_outputs reply: %w", err)
	}
	return nil, out, nil
}

func (s *Server) handleListWorkspaces(_ context.Context, _ *mcpsdk.CallToolRequest, _ emptyInput) (*mcpsdk.CallToolResult, ListWorkspacesOutput, error) {
	reply, err := s.sendQuery(queryListWorkspaces)
	if err != nil {
		return nil, ListWorkspacesOutput{}, err
	}
	var out ListWorkspacesOutput
	if err := json.Unmarshal([]byte(reply), &out.Workspaces); err != nil {
		return nil, ListWorkspacesOutput{}, fmt.Errorf("mcpserver: decode list_workspaces reply: %w", err)
	}
	return nil, out, nil
}

func (s *Server) handleListViews(_ context.Context, _ *mcpsdk.CallToolRequest, _ emptyInput) (*mcpsdk.CallToolResult, ListViewsOutput, error) {
	reply, err := s.sendQuery(queryListViews)
	if err != nil {
		return nil, ListViewsOutput{}, err
	}
	var out ListViewsOutput
	if err := json.Unmarshal([]byte(reply), &out.Views); err != nil {
		return nil, ListViewsOutput{}, fmt.Errorf("mcpserver: decode list_views reply: %w", err)
	}
	return nil, out, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ emptyInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	reply, err := s.sendQuery(queryGetStatus)
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	var out GetStatusOutput
	if err := json.Unmarshal([]byte(reply), &out.Status); err != nil {
		return nil, GetStatusOutput{}, fmt.Errorf("mcpserver: decode get_status reply: %w", err)
	}
	return nil, out, nil
}
