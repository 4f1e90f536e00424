package layer

import (
	"testing"

	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/surfacemgr"
)

func TestExclusiveZoneShrinksLeftEdge(t *testing.T) {
	surfaces := surfacemgr.NewManager()
	ls := &surfacemgr.LayerSurface{
		Layer:         backend.LayerTop,
		Anchor:        backend.AnchorLeft | backend.AnchorTop | backend.AnchorBottom,
		DesiredW:      30,
		ExclusiveZone: 30,
		Mapped:        true,
		Output:        1,
	}
	surfaces.AddLayerSurface(ls)

	full := geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}
	res := Arrange(geom.Size{W: 1920, H: 1080}, geom.Point{}, surfaces, 1, full)

	if res.UsableArea.X != 30 || res.UsableArea.W != 1890 {
		t.Fatalf("expected usable area shrunk from the left, got %+v", res.UsableArea)
	}
	if ls.Geometry.W != 30 {
		t.Fatalf("expected bar width 30, got %+v", ls.Geometry)
	}
	if !res.Changed {
		t.Fatalf("expected Changed when usable area shrinks from full resolution")
	}
}

func TestNonExclusiveStretchesWhenAnchoredBothSides(t *testing.T) {
	surfaces := surfacemgr.NewManager()
	ls := &surfacemgr.LayerSurface{
		Layer:    backend.LayerBottom,
		Anchor:   backend.AnchorLeft | backend.AnchorRight | backend.AnchorTop,
		DesiredH: 40,
		Mapped:   true,
		Output:   1,
	}
	surfaces.AddLayerSurface(ls)

	Arrange(geom.Size{W: 1920, H: 1080}, geom.Point{}, surfaces, 1, geom.Rect{W: 1920, H: 1080})

	if ls.Geometry.W != 1920 {
		t.Fatalf("expected full-width stretch, got %+v", ls.Geometry)
	}
}

func TestNegativeDimensionClosesSurface(t *testing.T) {
	surfaces := surfacemgr.NewManager()
	ls := &surfacemgr.LayerSurface{
		Layer:      backend.LayerTop,
		Anchor:     backend.AnchorLeft | backend.AnchorRight,
		DesiredW:   0,
		MarginLeft: 2000,
		Mapped:     true,
		Output:     1,
	}
	surfaces.AddLayerSurface(ls)

	res := Arrange(geom.Size{W: 1920, H: 1080}, geom.Point{}, surfaces, 1, geom.Rect{W: 1920, H: 1080})

	if len(res.Closed) != 1 || res.Closed[0] != ls {
		t.Fatalf("expected surface to be closed, got %+v", res.Closed)
	}
}

func TestTopmostKeyboardInteractivePrefersOverlayOverTop(t *testing.T) {
	surfaces := surfacemgr.NewManager()
	top := &surfacemgr.LayerSurface{Layer: backend.LayerTop, Mapped: true, KeyboardInteractive: true, Output: 1}
	overlay := &surfacemgr.LayerSurface{Layer: backend.LayerOverlay, Mapped: true, KeyboardInteractive: true, Output: 1}
	surfaces.AddLayerSurface(top)
	surfaces.AddLayerSurface(overlay)

	got := TopmostKeyboardInteractive(surfaces, 1)
	if got != overlay {
		t.Fatalf("expected the overlay surface to win, got %+v", got)
	}
}

func TestTopmostKeyboardInteractiveIgnoresNonInteractive(t *testing.T) {
	surfaces := surfacemgr.NewManager()
	ls := &surfacemgr.LayerSurface{Layer: backend.LayerTop, Mapped: true, KeyboardInteractive: false, Output: 1}
	surfaces.AddLayerSurface(ls)

	if got := TopmostKeyboardInteractive(surfaces, 1); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
