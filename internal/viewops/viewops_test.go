package viewops

import (
	"testing"

	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/output"
	"github.com/cardboardwm/cardboard/internal/view"
	"github.com/cardboardwm/cardboard/internal/workspace"
)

func setup() (*output.Manager, *output.Output, *workspace.Workspace) {
	om := output.NewManager()
	o := om.Register(1, "eDP-1", geom.Size{W: 800, H: 600})
	ws := workspace.New(0)
	h := o.Handle
	ws.Output = &h
	return om, o, ws
}

func TestReconfigurePositionTiledScrollsWorkspace(t *testing.T) {
	_, o, ws := setup()
	ops := &Ops{Gap: 10, OutputOf: func(w *workspace.Workspace) *output.Output { return o }}

	v := &view.View{Mapped: true, State: view.StateNormal}
	v.Geometry = geom.Rect{W: 300}
	ws.AddView(v, nil, false, false)
	v.SetPosition(100, 0)

	ops.ReconfigurePosition(v, ws, 50, 0, false)

	if ws.ScrollX != 50 {
		t.Fatalf("expected scroll_x to absorb the move delta, got %d", ws.ScrollX)
	}
}

func TestReconfigureSizeResizesWholeColumn(t *testing.T) {
	_, o, ws := setup()
	ops := &Ops{Gap: 10, OutputOf: func(w *workspace.Workspace) *output.Output { return o }}

	a := &view.View{Mapped: true, State: view.StateNormal}
	a.Geometry = geom.Rect{W: 300, H: 100}
	b := &view.View{Mapped: true, State: view.StateNormal}
	b.Geometry = geom.Rect{W: 300, H: 100}
	ws.AddView(a, nil, false, false)
	ws.AddView(b, a, false, false)
	ws.InsertIntoColumn(b, ws.Columns[0])

	ops.ReconfigureSize(a, ws, 400, 100)

	if a.Geometry.W != 400 || b.Geometry.W != 400 {
		t.Fatalf("expected whole column resized, got a=%d b=%d", a.Geometry.W, b.Geometry.W)
	}
}

func TestScrollWorkspaceRelativeComposesWithAbsolute(t *testing.T) {
	_, o, ws := setup()
	ops := &Ops{Gap: 10, OutputOf: func(w *workspace.Workspace) *output.Output { return o }}

	d1 := RelativeScroll(5)
	d2 := RelativeScroll(7)
	ops.ScrollWorkspace(ws, nil, &d1)
	ops.ScrollWorkspace(ws, nil, &d2)
	s1 := ws.ScrollX

	ws2 := workspace.New(1)
	h := o.Handle
	ws2.Output = &h
	combined := RelativeScroll(12)
	ops.ScrollWorkspace(ws2, nil, &combined)

	if s1 != ws2.ScrollX {
		t.Fatalf("expected sequential relative scrolls to equal one combined scroll: %d vs %d", s1, ws2.ScrollX)
	}
}
