// Package backend defines the narrow contract the core event loop uses to
// talk to the underlying display-server backend (output enumeration, input
// devices, rendering, and the xdg-shell/layer-shell/xwayland protocol
// machinery). None of that is implemented here: it is an external
// collaborator, reached only through this interface and the event stream
// it produces, the way internal/platform.Backend abstracted the window
// system for termtile.
package backend

import "github.com/cardboardwm/cardboard/internal/geom"

// OutputHandle, ViewHandle and LayerHandle are opaque, generational
// identifiers standing in for the backend's own object pointers
// (wlr_output*, a shell surface pointer, a layer-surface pointer). The
// backend assigns them when it reports a new object and never reuses a
// retired one.
type OutputHandle uint64

// ViewHandle identifies a mapped or unmapped top-level client surface.
type ViewHandle uint64

// LayerHandle identifies a layer-shell surface.
type LayerHandle uint64

// ShellKind distinguishes the two shell protocols a View can come from.
type ShellKind int

const (
	ShellXDGToplevel ShellKind = iota
	ShellXwaylandRegular
)

// Layer is one of the four layer-shell z-order buckets.
type Layer int

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerBottom:
		return "bottom"
	case LayerTop:
		return "top"
	case LayerOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Anchor is a bitmask of output edges a layer surface is pinned to.
type Anchor uint8

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// ResizeEdges is a bitmask used by interactive resize grabs.
type ResizeEdges uint8

const (
	EdgeTop ResizeEdges = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// EventKind tags the variant carried by an Event.
type EventKind int

const (
	EventNewOutput EventKind = iota
	EventDestroyOutput
	EventNewView
	EventMapView
	EventUnmapView
	EventDestroyView
	EventCommitView
	EventNewLayerSurface
	EventMapLayerSurface
	EventUnmapLayerSurface
	EventDestroyLayerSurface
	EventPointerMotion
	EventPointerButton
	EventPointerAxis
	EventKey
	EventSwipeBegin
	EventSwipeUpdate
	EventSwipeEnd
	EventFrame
)

// Event is a tagged union of everything the backend can report in one
// loop iteration. Only the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	Output OutputHandle
	View   ViewHandle
	Layer  LayerHandle

	// Output description, valid on EventNewOutput.
	OutputName       string
	OutputResolution geom.Size

	ShellKind ShellKind

	// Layer-surface description, valid on EventNewLayerSurface.
	LayerDesc LayerDesc

	// Pointer/keyboard payloads.
	X, Y            float64
	Button          uint32
	Pressed         bool
	AxisValue       float64
	Keysym          string
	Modifiers       uint32
	KeyPressed      bool

	// Swipe payloads.
	Fingers int
	DX, DY  float64
}

// LayerDesc is the static description a layer-shell client provides at
// surface-creation time (size/anchor/margin/exclusive-zone never change
// except via a later commit, modeled as a fresh EventNewLayerSurface-style
// update in this simplified engine).
type LayerDesc struct {
	Layer           Layer
	Anchor          Anchor
	DesiredW        int32
	DesiredH        int32
	MarginTop       int32
	MarginBottom    int32
	MarginLeft      int32
	MarginRight     int32
	ExclusiveZone   int32
	KeyboardInteractive bool
}

// Backend is the contract the core loop depends on. A real implementation
// wraps wlroots (or similar); internal/backend.Fake is a synthetic double
// used by every other package's tests.
type Backend interface {
	// Events returns the channel of backend-originated events. The core
	// loop selects on it alongside IPC and timer channels.
	Events() <-chan Event

	// Configure asks the backend to move/resize a view's surface.
	Configure(v ViewHandle, geo geom.Rect) error

	// ConfigureLayer asks the backend to move/resize a layer surface.
	ConfigureLayer(l LayerHandle, geo geom.Rect) error

	// SetFullscreen toggles the fullscreen shell state of a view.
	SetFullscreen(v ViewHandle, fullscreen bool) error

	// SetActivated toggles the "activated" decoration/visual state.
	SetActivated(v ViewHandle, activated bool) error

	// SendKeyboardEnter focuses the keyboard on the surface behind v (or,
	// for a nil handle, clears keyboard focus entirely).
	SendKeyboardEnter(v ViewHandle) error

	// CloseView requests an orderly client close (e.g. xdg_toplevel.close).
	CloseView(v ViewHandle) error

	// ClosePopups asks the backend to dismiss any popups owned by v.
	ClosePopups(v ViewHandle) error

	// IsTransientFor reports whether child declares parent as its
	// transient-for target (dialog/parent relationship).
	IsTransientFor(child, parent ViewHandle) bool

	// RequestRender schedules a frame on the given output.
	RequestRender(o OutputHandle) error
}
