// Package introspect defines the read-only snapshot types the monitor TUI
// and the MCP server decode from a query command's IPC reply. It has no
// dependency on internal/core: the core package encodes these as JSON
// into a command.Result.Message, and any client-side tool decodes them
// back, keeping the query payload shape out of the command wire codec
// itself (which carries the query kinds as bare tags, with no payload).
package introspect

// OutputSnapshot describes one registered monitor.
type OutputSnapshot struct {
	Name           string `json:"name"`
	X              int32  `json:"x"`
	Y              int32  `json:"y"`
	W              int32  `json:"w"`
	H              int32  `json:"h"`
	WorkspaceIndex int    `json:"workspace_index"`
}

// WorkspaceSnapshot describes one workspace, active or not.
type WorkspaceSnapshot struct {
	Index      int    `json:"index"`
	OutputName string `json:"output_name,omitempty"`
	Active     bool   `json:"active"`
	Columns    int    `json:"columns"`
	ViewCount  int    `json:"view_count"`
}

// ViewSnapshot describes one mapped or unmapped client surface.
type ViewSnapshot struct {
	Handle         uint64 `json:"handle"`
	WorkspaceIndex int    `json:"workspace_index"`
	Mapped         bool   `json:"mapped"`
	Floating       bool   `json:"floating"`
	Fullscreen     bool   `json:"fullscreen"`
	X              int32  `json:"x"`
	Y              int32  `json:"y"`
	W              int32  `json:"w"`
	H              int32  `json:"h"`
}

// Status is the top-level daemon summary get_status reports.
type Status struct {
	OutputCount    int   `json:"output_count"`
	WorkspaceCount int   `json:"workspace_count"`
	ViewCount      int   `json:"view_count"`
	FocusedHandle  uint64 `json:"focused_handle,omitempty"`
}
