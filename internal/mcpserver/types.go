package mcpserver

import "github.com/cardboardwm/cardboard/internal/introspect"

// ListOutputsOutput is the output for the list_outputs tool.
type ListOutputsOutput struct {
	Outputs []introspect.OutputSnapshot `json:"outputs"`
}

// ListWorkspacesOutput is the output for the list_workspaces tool.
type ListWorkspacesOutput struct {
	Workspaces []introspect.WorkspaceSnapshot `json:"workspaces"`
}

// ListViewsOutput is the output for the list_views tool.
type ListViewsOutput struct {
	Views []introspect.ViewSnapshot `json:"views"`
}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	introspect.Status
}

// emptyInput is the (argument-less) input shared by every tool: this
// server is strictly read-only, so nothing it exposes takes a parameter.
type emptyInput struct{}
