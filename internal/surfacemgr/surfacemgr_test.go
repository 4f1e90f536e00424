package surfacemgr

import (
	"testing"

	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/view"
	"github.com/cardboardwm/cardboard/internal/workspace"
)

func TestOverlayLayerBeatsTiledView(t *testing.T) {
	m := NewManager()
	ws := workspace.New(0)
	v := &view.View{Mapped: true, State: view.StateNormal}
	v.Geometry = geom.Rect{W: 800, H: 600}
	v.SetPosition(0, 0)
	ws.AddView(v, nil, false, false)

	ls := &LayerSurface{Layer: backend.LayerOverlay, Mapped: true, Geometry: geom.Rect{X: 10, Y: 10, W: 100, H: 20}, Output: 1}
	m.AddLayerSurface(ls)

	hit := m.GetSurfaceUnderCursor(20, 15, 1, ws)
	if !hit.Found || hit.Layer != ls {
		t.Fatalf("expected overlay layer hit, got %+v", hit)
	}

	hit = m.GetSurfaceUnderCursor(500, 500, 1, ws)
	if !hit.Found || hit.View != v {
		t.Fatalf("expected tiled view hit, got %+v", hit)
	}
}

func TestTopLayerSkippedWhenFullscreen(t *testing.T) {
	m := NewManager()
	ws := workspace.New(0)
	fs := &view.View{Mapped: true, State: view.StateNormal}
	fs.Geometry = geom.Rect{W: 800, H: 600}
	fs.SetPosition(0, 0)
	ws.AddView(fs, nil, false, false)
	ws.SetFullscreenView(fs)

	top := &LayerSurface{Layer: backend.LayerTop, Mapped: true, Geometry: geom.Rect{X: 0, Y: 0, W: 800, H: 30}, Output: 1}
	m.AddLayerSurface(top)

	hit := m.GetSurfaceUnderCursor(5, 5, 1, ws)
	if !hit.Found || hit.View != fs {
		t.Fatalf("expected fullscreen view to win over TOP layer, got %+v", hit)
	}
}

func TestFloatingBeatsTiled(t *testing.T) {
	m := NewManager()
	ws := workspace.New(0)
	tiled := &view.View{Mapped: true, State: view.StateNormal}
	tiled.Geometry = geom.Rect{W: 800, H: 600}
	tiled.SetPosition(0, 0)
	ws.AddView(tiled, nil, false, false)

	floating := &view.View{Mapped: true, State: view.StateNormal}
	floating.Geometry = geom.Rect{W: 200, H: 200}
	floating.SetPosition(100, 100)
	ws.AddView(floating, nil, true, false)

	hit := m.GetSurfaceUnderCursor(150, 150, 1, ws)
	if !hit.Found || hit.View != floating {
		t.Fatalf("expected floating view to win, got %+v", hit)
	}
}
