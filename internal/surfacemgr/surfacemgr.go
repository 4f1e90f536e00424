// Package surfacemgr owns every View and LayerSurface and implements the
// top-to-bottom hit-testing pipeline that maps a cursor point to the
// surface exposed there.
package surfacemgr

import (
	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/view"
	"github.com/cardboardwm/cardboard/internal/workspace"
)

// LayerSurface is a layer-shell client occupying one of the four layers
// on exactly one output.
type LayerSurface struct {
	Handle backend.LayerHandle
	Output backend.OutputHandle

	Layer               backend.Layer
	Anchor              backend.Anchor
	DesiredW, DesiredH   int32
	MarginTop            int32
	MarginBottom         int32
	MarginLeft           int32
	MarginRight          int32
	ExclusiveZone        int32
	KeyboardInteractive  bool

	// Geometry is the current computed box, in global coordinates, set
	// by the layer package after arrangement.
	Geometry geom.Rect
	Mapped   bool
}

// Manager owns the view registry (front = topmost, z-order) and the
// layer-surface lists, and runs GetSurfaceUnderCursor.
type Manager struct {
	views  []*view.View
	nextID view.ID

	layers map[backend.Layer][]*LayerSurface

	// UnmanagedXwayland holds surfaces that bypass the shell entirely
	// (xwayland override-redirect windows). Hit-tested between TOP
	// layers and the fullscreen view, per spec order; empty unless a
	// backend reports any.
	UnmanagedXwayland []UnmanagedSurface
}

// UnmanagedSurface is an override-redirect xwayland surface with no
// associated View.
type UnmanagedSurface struct {
	Handle backend.ViewHandle
	Box    geom.Rect
}

// NewManager returns an empty surface manager.
func NewManager() *Manager {
	return &Manager{layers: make(map[backend.Layer][]*LayerSurface)}
}

// NewView allocates a fresh View with a stable generational ID.
func (m *Manager) NewView(shell view.Capability) *view.View {
	m.nextID++
	return &view.View{ID: m.nextID, Shell: shell, WorkspaceIndex: -1}
}

// MapView marks v mapped and moves it to the front of the view list
// (topmost). Workspace membership and focus are the caller's
// responsibility (Seat.FocusView / Workspace.AddView), matching
// SurfaceManager::map_view delegating to those.
func (m *Manager) MapView(v *view.View) {
	v.Mapped = true
	m.MoveViewToFront(v)
}

// UnmapView marks v unmapped and removes it from the topmost-ordered
// list. Workspace removal and focus-stack eviction are the caller's
// responsibility.
func (m *Manager) UnmapView(v *view.View) {
	v.Mapped = false
	for i, vv := range m.views {
		if vv == v {
			m.views = append(m.views[:i], m.views[i+1:]...)
			return
		}
	}
}

// MoveViewToFront moves v to the front of the z-order list, inserting it
// if not already present.
func (m *Manager) MoveViewToFront(v *view.View) {
	for i, vv := range m.views {
		if vv == v {
			m.views = append(m.views[:i], m.views[i+1:]...)
			break
		}
	}
	m.views = append([]*view.View{v}, m.views...)
}

// Views returns the view list, front = topmost.
func (m *Manager) Views() []*view.View { return m.views }

// AddLayerSurface registers a new layer-shell surface.
func (m *Manager) AddLayerSurface(ls *LayerSurface) {
	m.layers[ls.Layer] = append(m.layers[ls.Layer], ls)
}

// RemoveLayerSurface drops a layer-shell surface from its layer's list.
func (m *Manager) RemoveLayerSurface(ls *LayerSurface) {
	list := m.layers[ls.Layer]
	for i, l := range list {
		if l == ls {
			m.layers[ls.Layer] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// LayersOn returns every layer surface on output o in layer l, in
// registration order.
func (m *Manager) LayersOn(o backend.OutputHandle, l backend.Layer) []*LayerSurface {
	var out []*LayerSurface
	for _, ls := range m.layers[l] {
		if ls.Output == o {
			out = append(out, ls)
		}
	}
	return out
}

// HitResult is the outcome of GetSurfaceUnderCursor.
type HitResult struct {
	View    *view.View // nil if the hit surface isn't a view (layer, unmanaged)
	Layer   *LayerSurface
	Found   bool
	SX, SY  float64 // surface-local coordinates of the hit point
}

// GetSurfaceUnderCursor walks layers top to bottom as specified in
// spec.md 4.3: OVERLAY, TOP (skipped if ws has a fullscreen view),
// unmanaged xwayland, the fullscreen view, floating views front-to-back,
// tiled views column by column, then BOTTOM and BACKGROUND.
func (m *Manager) GetSurfaceUnderCursor(lx, ly float64, o backend.OutputHandle, ws *workspace.Workspace) HitResult {
	ix, iy := int32(lx), int32(ly)

	for _, ls := range m.LayersOn(o, backend.LayerOverlay) {
		if ls.Mapped && ls.Geometry.Contains(ix, iy) {
			return HitResult{Layer: ls, Found: true, SX: lx - float64(ls.Geometry.X), SY: ly - float64(ls.Geometry.Y)}
		}
	}

	hasFullscreen := ws != nil && ws.FullscreenView != nil
	if !hasFullscreen {
		for _, ls := range m.LayersOn(o, backend.LayerTop) {
			if ls.Mapped && ls.Geometry.Contains(ix, iy) {
				return HitResult{Layer: ls, Found: true, SX: lx - float64(ls.Geometry.X), SY: ly - float64(ls.Geometry.Y)}
			}
		}
	}

	for _, u := range m.UnmanagedXwayland {
		if u.Box.Contains(ix, iy) {
			return HitResult{Found: true, SX: lx - float64(u.Box.X), SY: ly - float64(u.Box.Y)}
		}
	}

	if ws != nil {
		if fv := ws.FullscreenView; fv != nil && fv.Mapped {
			if box := viewBox(fv); box.Contains(ix, iy) {
				return HitResult{View: fv, Found: true, SX: lx - float64(box.X), SY: ly - float64(box.Y)}
			}
		}

		for _, fv := range ws.FloatingViews {
			if !fv.Mapped {
				continue
			}
			if box := viewBox(fv); box.Contains(ix, iy) {
				return HitResult{View: fv, Found: true, SX: lx - float64(box.X), SY: ly - float64(box.Y)}
			}
		}

		for _, col := range ws.Columns {
			for _, t := range col.Tiles {
				if !t.View.Mapped {
					continue
				}
				if box := viewBox(t.View); box.Contains(ix, iy) {
					return HitResult{View: t.View, Found: true, SX: lx - float64(box.X), SY: ly - float64(box.Y)}
				}
			}
		}
	}

	for _, layerKind := range []backend.Layer{backend.LayerBottom, backend.LayerBackground} {
		for _, ls := range m.LayersOn(o, layerKind) {
			if ls.Mapped && ls.Geometry.Contains(ix, iy) {
				return HitResult{Layer: ls, Found: true, SX: lx - float64(ls.Geometry.X), SY: ly - float64(ls.Geometry.Y)}
			}
		}
	}

	return HitResult{}
}

func viewBox(v *view.View) geom.Rect {
	return geom.Rect{X: v.X, Y: v.Y, W: v.Geometry.W, H: v.Geometry.H}
}
