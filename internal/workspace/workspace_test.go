package workspace

import (
	"testing"

	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/view"
)

func newMappedView(w, h int32) *view.View {
	v := &view.View{Mapped: true, State: view.StateNormal}
	v.Geometry = geom.Rect{W: w, H: h}
	return v
}

func TestAddRemoveViewRoundTrips(t *testing.T) {
	ws := New(0)
	a := newMappedView(300, 0)
	ws.AddView(a, nil, false, false)
	if len(ws.Columns) != 1 {
		t.Fatalf("expected 1 column, got %d", len(ws.Columns))
	}
	if a.WorkspaceIndex != 0 {
		t.Fatalf("expected workspace index 0, got %d", a.WorkspaceIndex)
	}
	ws.RemoveView(a)
	if len(ws.Columns) != 0 {
		t.Fatalf("expected column collapsed after removing its only tile")
	}
}

func TestEmptyColumnCollapsesOnInsertIntoColumn(t *testing.T) {
	ws := New(0)
	a := newMappedView(300, 0)
	b := newMappedView(300, 0)
	ws.AddView(a, nil, false, false)
	ws.AddView(b, a, false, false)
	if len(ws.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(ws.Columns))
	}
	if err := ws.InsertIntoColumn(b, ws.Columns[0]); err != nil {
		t.Fatalf("InsertIntoColumn: %v", err)
	}
	if len(ws.Columns) != 1 {
		t.Fatalf("expected source column to collapse, got %d columns", len(ws.Columns))
	}
	if len(ws.Columns[0].Tiles) != 2 {
		t.Fatalf("expected 2 tiles in target column, got %d", len(ws.Columns[0].Tiles))
	}
}

func TestScrollOnFocusScenario(t *testing.T) {
	// Output is 800 wide with gap 10. Three tiled views A, B, C each 300
	// wide.
	ws := New(0)
	gap := int32(10)
	outputBox := geom.Rect{X: 0, Y: 0, W: 800, H: 600}
	usable := geom.Rect{X: 0, Y: 0, W: 800, H: 600}

	a := newMappedView(300, 0)
	b := newMappedView(300, 0)
	c := newMappedView(300, 0)
	ws.AddView(a, nil, false, false)
	ws.AddView(b, a, false, false)
	ws.AddView(c, b, false, false)

	placements := ws.Arrange(outputBox, usable, gap)
	ws.Apply(placements)

	if err := ws.FitViewOnScreen(c, usable, gap, false); err != nil {
		t.Fatalf("FitViewOnScreen(c): %v", err)
	}
	placements = ws.Arrange(outputBox, usable, gap)
	ws.Apply(placements)
	if c.X+c.Geometry.W > usable.Right() {
		t.Fatalf("expected C fully on screen, got x=%d w=%d", c.X, c.Geometry.W)
	}

	if err := ws.FitViewOnScreen(a, usable, gap, false); err != nil {
		t.Fatalf("FitViewOnScreen(a): %v", err)
	}
	placements = ws.Arrange(outputBox, usable, gap)
	ws.Apply(placements)
	if a.X < usable.X {
		t.Fatalf("expected A's left edge visible, got x=%d", a.X)
	}
}

func TestFullscreenToggleRestoresGeometry(t *testing.T) {
	ws := New(0)
	v := newMappedView(300, 200)
	ws.AddView(v, nil, false, false)
	v.SetPosition(10, 20)

	ws.SetFullscreenView(v)
	if v.State != view.StateFullscreen {
		t.Fatalf("expected fullscreen state")
	}

	ws.SetFullscreenView(nil)
	if v.State != view.StateRecovering {
		t.Fatalf("expected recovering state after clearing fullscreen")
	}
	if v.X != 10 || v.Y != 20 || v.Geometry.W != 300 || v.Geometry.H != 200 {
		t.Fatalf("expected geometry restored to pre-fullscreen box, got %+v", v)
	}
	FinishRecovery(v)
	if v.State != view.StateNormal {
		t.Fatalf("expected normal state after recovery finishes")
	}
}

func TestArrangeIsIdempotentWithoutResizes(t *testing.T) {
	ws := New(0)
	a := newMappedView(300, 0)
	b := newMappedView(300, 0)
	ws.AddView(a, nil, false, false)
	ws.AddView(b, a, false, false)
	outputBox := geom.Rect{X: 0, Y: 0, W: 800, H: 600}
	usable := geom.Rect{X: 0, Y: 0, W: 800, H: 600}

	p1 := ws.Arrange(outputBox, usable, 10)
	ws.Apply(p1)
	p2 := ws.Arrange(outputBox, usable, 10)

	if len(p1) != len(p2) {
		t.Fatalf("expected same placement count, got %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i].X != p2[i].X || p1[i].Y != p2[i].Y || p1[i].Width != p2[i].Width || p1[i].Height != p2[i].Height {
			t.Fatalf("arrange not idempotent at index %d: %+v vs %+v", i, p1[i], p2[i])
		}
	}
}
