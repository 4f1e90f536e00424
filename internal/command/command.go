// Package command implements the CommandData sum type, the keybinding
// table, and dispatch_command: pattern-matching a decoded command into an
// operation against server state.
package command

import (
	"fmt"
	"strings"
)

// Direction is the Focus/Move directional argument.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirCycle
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// ParseDirection parses the lowercase direction names used by the CLI and
// the wire protocol.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "cycle":
		return DirCycle, nil
	default:
		return 0, fmt.Errorf("command: unknown direction %q", s)
	}
}

// Modifier bit positions used by both keybinding registration and the
// "mod+mod+key" syntax the CLI and config script parse.
const (
	ModShift uint32 = 1 << iota
	ModCtrl
	ModAlt
	ModMod3
	ModMod4
	ModMod5
	ModLogo
)

// ParseModifiers parses a "+"-joined modifier list such as "logo+shift"
// (case-insensitive) into the bitmask bound by the keybinding table.
func ParseModifiers(s string) (uint32, error) {
	var mods uint32
	for _, part := range strings.Split(s, "+") {
		switch strings.ToLower(part) {
		case "shift":
			mods |= ModShift
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt":
			mods |= ModAlt
		case "mod3":
			mods |= ModMod3
		case "mod4":
			mods |= ModMod4
		case "mod5":
			mods |= ModMod5
		case "logo", "super", "mod":
			mods |= ModLogo
		default:
			return 0, fmt.Errorf("command: unknown modifier %q", part)
		}
	}
	return mods, nil
}

// Kind tags the Data variant.
type Kind uint8

const (
	KindQuit Kind = iota
	KindFocus
	KindExec
	KindBind
	KindClose
	KindWorkspaceSwitch
	KindWorkspaceMove
	KindToggleFloating
	KindMove
	KindResize
	KindInsertIntoColumn
	KindPopFromColumn
	KindConfigMouseMod
	KindConfigGap
	KindConfigFocusColor
	KindCycleWidth

	// Query kinds are read-only: Dispatch always reports their result in
	// Result.Message rather than treating a non-empty message as an
	// error, since they have no failure mode of their own. The monitor
	// TUI and the MCP server use these; the CLI grammar (spec.md §6)
	// never produces them.
	KindListOutputs
	KindListWorkspaces
	KindListViews
	KindGetStatus
)

// IsQuery reports whether k is one of the read-only introspection kinds.
func (k Kind) IsQuery() bool {
	return k >= KindListOutputs
}

func (k Kind) String() string {
	names := [...]string{
		"quit", "focus", "exec", "bind", "close", "workspace_switch",
		"workspace_move", "toggle_floating", "move", "resize",
		"insert_into_column", "pop_from_column", "config_mouse_mod",
		"config_gap", "config_focus_color", "cycle_width",
		"list_outputs", "list_workspaces", "list_views", "get_status",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Data is the sum-typed command protocol. Only the fields relevant to
// Kind are meaningful; this mirrors the tagged-union CommandData from the
// original C++ source (there serialized with capnp) but is encoded with
// the fixed binary layout in this package's codec.go instead.
type Data struct {
	Kind Kind

	Code int32 // Quit

	Direction Direction // Focus

	Argv []string // Exec

	BindMods  uint32 // Bind
	BindKey   string
	BindInner *Data

	N int32 // WorkspaceSwitch, WorkspaceMove

	DX, DY int32 // Move
	W, H   int32 // Resize

	Mods uint32 // ConfigMouseMod
	Gap  int32  // ConfigGap
	R, G, B, A float64 // ConfigFocusColor
}

// Result is the outcome of executing a Data against a Target: a message
// to report back to the IPC client (empty if none).
type Result struct {
	Message string
}

// Target is everything Dispatch needs from server state. The core
// package implements it; keeping it as an interface here lets command
// stay free of a dependency on core (which depends on command).
type Target interface {
	Quit(code int32)
	FocusDirection(d Direction) error
	FocusCycle() error
	Exec(argv []string) error
	Bind(mods uint32, key string, inner *Data)
	CloseFocused() error
	WorkspaceSwitch(n int32) error
	WorkspaceMove(n int32) error
	ToggleFloating() error
	Move(dx, dy int32) error
	Resize(w, h int32) error
	InsertIntoColumn() error
	PopFromColumn() error
	ConfigMouseMod(mods uint32)
	ConfigGap(px int32)
	ConfigFocusColor(r, g, b, a float64)
	CycleWidth() error

	// Query methods back the read-only Kind*.IsQuery() commands. Each
	// returns a serialized snapshot (internal/introspect), never an
	// error: introspection has no failure mode once the daemon is up.
	ListOutputs() string
	ListWorkspaces() string
	ListViews() string
	GetStatus() string
}

// Dispatch pattern-matches d's Kind and invokes the matching Target
// method, translating any error into a CommandResult message (matching
// spec.md's "every command returns CommandResult{message}").
func Dispatch(d *Data, t Target) Result {
	var err error
	switch d.Kind {
	case KindQuit:
		t.Quit(d.Code)
		return Result{}
	case KindFocus:
		if d.Direction == DirCycle {
			err = t.FocusCycle()
		} else {
			err = t.FocusDirection(d.Direction)
		}
	case KindExec:
		err = t.Exec(d.Argv)
	case KindBind:
		t.Bind(d.BindMods, d.BindKey, d.BindInner)
		return Result{}
	case KindClose:
		err = t.CloseFocused()
	case KindWorkspaceSwitch:
		err = t.WorkspaceSwitch(d.N)
	case KindWorkspaceMove:
		err = t.WorkspaceMove(d.N)
	case KindToggleFloating:
		err = t.ToggleFloating()
	case KindMove:
		err = t.Move(d.DX, d.DY)
	case KindResize:
		err = t.Resize(d.W, d.H)
	case KindInsertIntoColumn:
		err = t.InsertIntoColumn()
	case KindPopFromColumn:
		err = t.PopFromColumn()
	case KindConfigMouseMod:
		t.ConfigMouseMod(d.Mods)
		return Result{}
	case KindConfigGap:
		t.ConfigGap(d.Gap)
		return Result{}
	case KindConfigFocusColor:
		t.ConfigFocusColor(d.R, d.G, d.B, d.A)
		return Result{}
	case KindCycleWidth:
		err = t.CycleWidth()
	case KindListOutputs:
		return Result{Message: t.ListOutputs()}
	case KindListWorkspaces:
		return Result{Message: t.ListWorkspaces()}
	case KindListViews:
		return Result{Message: t.ListViews()}
	case KindGetStatus:
		return Result{Message: t.GetStatus()}
	default:
		return Result{Message: fmt.Sprintf("unknown command kind %d", d.Kind)}
	}
	if err != nil {
		return Result{Message: err.Error()}
	}
	return Result{}
}

// KeybindingTable maps a modifier mask to a lowercased keysym to the
// bound Data. Modifier masks use at most 12 bits, matching spec.md.
type KeybindingTable struct {
	bindings map[uint32]map[string]*Data
}

// NewKeybindingTable returns an empty table.
func NewKeybindingTable() *KeybindingTable {
	return &KeybindingTable{bindings: make(map[uint32]map[string]*Data)}
}

// Bind registers inner under (mods, lowercase(key)), replacing any
// previous binding for that exact key.
func (k *KeybindingTable) Bind(mods uint32, key string, inner *Data) {
	key = strings.ToLower(key)
	if k.bindings[mods] == nil {
		k.bindings[mods] = make(map[string]*Data)
	}
	k.bindings[mods][key] = inner
}

// Lookup returns the Data bound to (mods, lowercase(key)), if any.
func (k *KeybindingTable) Lookup(mods uint32, key string) (*Data, bool) {
	m, ok := k.bindings[mods]
	if !ok {
		return nil, false
	}
	d, ok := m[strings.ToLower(key)]
	return d, ok
}
