// Package view defines the View type shared by the workspace, surfacemgr,
// seat, viewops and animation packages, plus the shell Capability interface
// that lets those packages stay agnostic of whether a view is backed by an
// xdg-toplevel or an xwayland-regular surface.
package view

import (
	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/geom"
)

// ExpansionState tracks a view's fullscreen lifecycle.
type ExpansionState int

const (
	StateNormal ExpansionState = iota
	StateRecovering
	StateFullscreen
)

func (s ExpansionState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateRecovering:
		return "recovering"
	case StateFullscreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// ID is a generational, stable identifier for a View, assigned by
// surfacemgr.NewView. Focus stack entries and command targets hold
// *View pointers, not IDs.
type ID uint64

// Capability is the tagged-variant interface over shell variants (xdg vs
// xwayland), so the rest of the engine never branches on shell kind.
type Capability interface {
	Resize(w, h int32) error
	Move(x, y int32) error
	SetActivated(active bool) error
	SetFullscreen(fullscreen bool) error
	Close() error
	ClosePopups() error
	IsTransientFor(other Capability) bool
	Handle() backend.ViewHandle
}

// View is a top-level client window, polymorphic over shell variants.
type View struct {
	ID    ID
	Shell Capability

	// Geometry is the inner content box within the surface, in
	// surface-local coordinates (accounts for invisible shadow/decoration
	// margins the client may draw outside its content area).
	Geometry geom.Rect

	// X, Y is the view's current position in global coordinates.
	X, Y int32
	// TargetX, TargetY is where an in-flight animation is heading; equal
	// to X, Y when idle.
	TargetX, TargetY int32

	Mapped bool

	// WorkspaceIndex is the owning workspace's index, or -1 if the view
	// belongs to none (unmapped, or mid-transfer).
	WorkspaceIndex int

	// Floating is true if the view is a floating (non-tiled) member of
	// its workspace.
	Floating bool

	State      ExpansionState
	SavedState geom.Rect // valid iff State != StateNormal
	HasSaved   bool

	// PreviousSize is remembered across float/tile transitions so
	// ToggleFloating can restore it.
	PreviousSize geom.Size
}

// Position returns the view's current (x,y).
func (v *View) Position() geom.Point { return geom.Point{X: v.X, Y: v.Y} }

// SetPosition snaps the view to (x,y) immediately, with no animation.
func (v *View) SetPosition(x, y int32) {
	v.X, v.Y = x, y
	v.TargetX, v.TargetY = x, y
}

// SetTarget records an animation target without moving the view yet.
func (v *View) SetTarget(x, y int32) {
	v.TargetX, v.TargetY = x, y
}
