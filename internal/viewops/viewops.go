// Package viewops implements the high-level view moves that preserve
// invariants across workspaces, outputs, and tiling: change_view_workspace,
// reconfigure_view_position/size, and the absolute/relative scroll_workspace
// variants.
package viewops

import (
	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/output"
	"github.com/cardboardwm/cardboard/internal/seat"
	"github.com/cardboardwm/cardboard/internal/view"
	"github.com/cardboardwm/cardboard/internal/workspace"
)

// Ops bundles the collaborators reconfiguration needs: the gap (from
// config), and a lookup from workspace to its assigned output (since
// Workspace only stores the output handle, not the Output itself).
type Ops struct {
	Gap          int32
	Seat         *seat.Seat
	OutputOf     func(*workspace.Workspace) *output.Output
	FocusView    func(v *view.View) error
}

// AbsoluteScroll and RelativeScroll are newtype-tagged integers so
// ScrollWorkspace callers can't accidentally mix absolute and relative
// intents.
type AbsoluteScroll int32
type RelativeScroll int32

// ChangeViewWorkspace moves v from its current workspace to newWS,
// transferring fullscreen state, re-centering floating views that cross
// onto a different output, and refocusing v afterward.
func (o *Ops) ChangeViewWorkspace(v *view.View, oldWS, newWS *workspace.Workspace) error {
	wasFullscreen := oldWS != nil && oldWS.FullscreenView == v

	oldOutput := o.OutputOf(oldWS)
	newOutput := o.OutputOf(newWS)

	if v.Floating && oldOutput != nil && newOutput != nil && oldOutput.Handle != newOutput.Handle {
		usable := newOutput.RealUsableArea()
		v.SetPosition(usable.X+(usable.W-v.Geometry.W)/2, usable.Y+(usable.H-v.Geometry.H)/2)
	}

	if oldWS != nil {
		oldWS.RemoveView(v)
	}
	newWS.AddView(v, nil, v.Floating, true)
	v.WorkspaceIndex = newWS.Index

	if wasFullscreen {
		newWS.SetFullscreenView(v)
	}

	if o.FocusView != nil {
		return o.FocusView(v)
	}
	return nil
}

// UpdateViewWorkspace checks whether a floating view has drifted onto a
// different output than its workspace's and, if so, migrates it via
// ChangeViewWorkspace to the workspace assigned to the new output.
func (o *Ops) UpdateViewWorkspace(v *view.View, ws *workspace.Workspace, outputs *output.Manager, wsForOutput func(h backend.OutputHandle) *workspace.Workspace) error {
	if !v.Floating {
		return nil
	}
	out, ok := outputs.At(v.X, v.Y)
	if !ok {
		return nil
	}
	cur := o.OutputOf(ws)
	if cur != nil && cur.Handle == out.Handle {
		return nil
	}
	newWS := wsForOutput(out.Handle)
	if newWS == nil || newWS == ws {
		return nil
	}
	return o.ChangeViewWorkspace(v, ws, newWS)
}

// ReconfigurePosition implements reconfigure_view_position: tiled views
// translate the requested move into a workspace scroll delta; floating
// views are moved directly. No output-migration check is made here, even
// when a floating view is moved onto another output.
func (o *Ops) ReconfigurePosition(v *view.View, ws *workspace.Workspace, x, y int32, animate bool) {
	if !v.Floating {
		dx := v.X - x
		out := o.OutputOf(ws)
		if out != nil {
			ws.ScrollX += dx
			placements := ws.Arrange(out.Box(), out.RealUsableArea(), o.Gap)
			ws.Apply(placements)
		}
		return
	}
	v.SetPosition(x, y)
}

// ReconfigureSize implements reconfigure_view_size: floating views resize
// directly; tiled views resize every mapped-normal tile in the same
// column to the new width, keeping the column's layout-determined
// height.
func (o *Ops) ReconfigureSize(v *view.View, ws *workspace.Workspace, w, h int32) {
	if v.Floating {
		v.Geometry.W, v.Geometry.H = w, h
		return
	}
	for _, col := range ws.Columns {
		for _, t := range col.Tiles {
			if t.View == v {
				for _, tt := range col.Tiles {
					if tt.View.Mapped && tt.View.State == view.StateNormal {
						tt.View.Geometry.W = w
					}
				}
				return
			}
		}
	}
}

// ScrollWorkspace sets (Absolute) or adjusts (Relative) a workspace's
// ScrollX and re-arranges it.
func (o *Ops) ScrollWorkspace(ws *workspace.Workspace, abs *AbsoluteScroll, rel *RelativeScroll) []workspace.Placement {
	switch {
	case abs != nil:
		ws.ScrollX = int32(*abs)
	case rel != nil:
		ws.ScrollX += int32(*rel)
	}
	out := o.OutputOf(ws)
	if out == nil {
		return nil
	}
	placements := ws.Arrange(out.Box(), out.RealUsableArea(), o.Gap)
	ws.Apply(placements)
	return placements
}
