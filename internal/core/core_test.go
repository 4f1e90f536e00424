package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/command"
	"github.com/cardboardwm/cardboard/internal/config"
	"github.com/cardboardwm/cardboard/internal/geom"
)

func newTestCore() (*Core, *backend.Fake) {
	fake := backend.NewFake()
	cfg := config.DefaultConfig()
	c := New(cfg, fake)
	return c, fake
}

func TestOutputRegistrationAssignsWorkspace(t *testing.T) {
	c, fake := newTestCore()
	oh := fake.NextOutput()
	c.handleEvent(backend.Event{
		Kind: backend.EventNewOutput, Output: oh,
		OutputName: "eDP-1", OutputResolution: geom.Size{W: 1920, H: 1080},
	})

	if ws := c.workspaceByOutput[oh]; ws == nil {
		t.Fatalf("expected output to be assigned a workspace")
	}
}

func TestMapViewTilesAndFocuses(t *testing.T) {
	c, fake := newTestCore()
	oh := fake.NextOutput()
	c.handleEvent(backend.Event{
		Kind: backend.EventNewOutput, Output: oh,
		OutputName: "eDP-1", OutputResolution: geom.Size{W: 1920, H: 1080},
	})

	vh := fake.NextView()
	c.handleEvent(backend.Event{Kind: backend.EventNewView, View: vh})
	c.handleEvent(backend.Event{Kind: backend.EventMapView, View: vh})

	focused := c.Seat.FocusedView()
	if focused == nil {
		t.Fatalf("expected a focused view after mapping")
	}
	if focused.Shell.Handle() != vh {
		t.Fatalf("expected the mapped view to be focused")
	}
	if !fake.Activated[vh] {
		t.Fatalf("expected backend to activate the mapped view")
	}
}

func TestQuitCommandStopsRunLoop(t *testing.T) {
	c, fake := newTestCore()
	go func() {
		command.Dispatch(&command.Data{Kind: command.KindQuit, Code: 7}, c)
	}()
	_ = fake
	code := c.Run()
	if code != 7 {
		t.Fatalf("expected quit code 7, got %d", code)
	}
}

func TestGetStatusReportsCounts(t *testing.T) {
	c, fake := newTestCore()
	oh := fake.NextOutput()
	c.handleEvent(backend.Event{
		Kind: backend.EventNewOutput, Output: oh,
		OutputName: "eDP-1", OutputResolution: geom.Size{W: 1920, H: 1080},
	})
	vh := fake.NextView()
	c.handleEvent(backend.Event{Kind: backend.EventNewView, View: vh})
	c.handleEvent(backend.Event{Kind: backend.EventMapView, View: vh})

	status := c.GetStatus()
	if !strings.Contains(status, `"output_count":1`) {
		t.Fatalf("expected one output in status, got %s", status)
	}
	if !strings.Contains(status, `"view_count":1`) {
		t.Fatalf("expected one view in status, got %s", status)
	}
}

func TestListOutputsReportsAssignedWorkspace(t *testing.T) {
	c, fake := newTestCore()
	oh := fake.NextOutput()
	c.handleEvent(backend.Event{
		Kind: backend.EventNewOutput, Output: oh,
		OutputName: "eDP-1", OutputResolution: geom.Size{W: 1920, H: 1080},
	})

	out := c.ListOutputs()
	if !strings.Contains(out, `"name":"eDP-1"`) {
		t.Fatalf("expected output name in payload, got %s", out)
	}
	if !strings.Contains(out, `"workspace_index":0`) {
		t.Fatalf("expected workspace assignment in payload, got %s", out)
	}
}

func TestMoveSwapsAdjacentColumn(t *testing.T) {
	c, fake := newTestCore()
	oh := fake.NextOutput()
	c.handleEvent(backend.Event{
		Kind: backend.EventNewOutput, Output: oh,
		OutputName: "eDP-1", OutputResolution: geom.Size{W: 1920, H: 1080},
	})

	vh1 := fake.NextView()
	c.handleEvent(backend.Event{Kind: backend.EventNewView, View: vh1})
	c.handleEvent(backend.Event{Kind: backend.EventMapView, View: vh1})

	vh2 := fake.NextView()
	c.handleEvent(backend.Event{Kind: backend.EventNewView, View: vh2})
	c.handleEvent(backend.Event{Kind: backend.EventMapView, View: vh2})

	ws := c.workspaceByOutput[oh]
	focused := c.Seat.FocusedView()
	if focused.Shell.Handle() != vh2 {
		t.Fatalf("expected the second mapped view to be focused")
	}
	col, colIdx := columnOf(ws, focused)
	if col == nil || colIdx != 1 {
		t.Fatalf("expected focused view in column 1, got %d", colIdx)
	}

	scrollBefore := ws.ScrollX
	if err := c.Move(-1, 0); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, newIdx := columnOf(ws, focused); newIdx != 0 {
		t.Fatalf("expected Move(-1,0) to swap focused view into column 0, got %d", newIdx)
	}
	if ws.ScrollX != scrollBefore {
		t.Fatalf("expected Move to swap columns, not scroll the workspace; ScrollX=%d", ws.ScrollX)
	}
}

func TestMoveOnSingleColumnSingleTileIsNoop(t *testing.T) {
	c, fake := newTestCore()
	oh := fake.NextOutput()
	c.handleEvent(backend.Event{
		Kind: backend.EventNewOutput, Output: oh,
		OutputName: "eDP-1", OutputResolution: geom.Size{W: 1920, H: 1080},
	})

	vh := fake.NextView()
	c.handleEvent(backend.Event{Kind: backend.EventNewView, View: vh})
	c.handleEvent(backend.Event{Kind: backend.EventMapView, View: vh})

	ws := c.workspaceByOutput[oh]
	scrollBefore := ws.ScrollX
	if err := c.Move(1, 0); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if err := c.Move(0, 1); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if len(ws.Columns) != 1 || len(ws.Columns[0].Tiles) != 1 {
		t.Fatalf("expected a single column/tile to remain, got %d columns", len(ws.Columns))
	}
	if ws.ScrollX != scrollBefore {
		t.Fatalf("expected Move to be a scroll no-op on a single tile, ScrollX=%d", ws.ScrollX)
	}
}

func TestToggleFloatingRestoresPreviousSizeAndFillsHole(t *testing.T) {
	c, fake := newTestCore()
	oh := fake.NextOutput()
	c.handleEvent(backend.Event{
		Kind: backend.EventNewOutput, Output: oh,
		OutputName: "eDP-1", OutputResolution: geom.Size{W: 1920, H: 1080},
	})

	vh1 := fake.NextView()
	c.handleEvent(backend.Event{Kind: backend.EventNewView, View: vh1})
	c.handleEvent(backend.Event{Kind: backend.EventMapView, View: vh1})

	vh2 := fake.NextView()
	c.handleEvent(backend.Event{Kind: backend.EventNewView, View: vh2})
	c.handleEvent(backend.Event{Kind: backend.EventMapView, View: vh2})

	focused := c.Seat.FocusedView()
	if focused.Shell.Handle() != vh2 {
		t.Fatalf("expected the second mapped view to be focused")
	}
	tiledW, tiledH := focused.Geometry.W, focused.Geometry.H

	if err := c.ToggleFloating(); err != nil {
		t.Fatalf("ToggleFloating: %v", err)
	}
	if !focused.Floating {
		t.Fatalf("expected view to become floating")
	}
	if focused.PreviousSize.W != tiledW || focused.PreviousSize.H != tiledH {
		t.Fatalf("expected PreviousSize to remember the tiled geometry, got %+v", focused.PreviousSize)
	}

	if err := c.ToggleFloating(); err != nil {
		t.Fatalf("ToggleFloating back: %v", err)
	}
	if focused.Floating {
		t.Fatalf("expected view to become tiled again")
	}
	if focused.Geometry.W != tiledW || focused.Geometry.H != tiledH {
		t.Fatalf("expected Geometry restored from PreviousSize, got %dx%d", focused.Geometry.W, focused.Geometry.H)
	}
}

func TestMoveWithNoFocusedViewReturnsSentinel(t *testing.T) {
	c, _ := newTestCore()
	if err := c.Move(1, 0); !errors.Is(err, ErrNoFocusedView) {
		t.Fatalf("expected ErrNoFocusedView, got %v", err)
	}
}

func TestConfigGapCommandUpdatesLiveConfig(t *testing.T) {
	c, _ := newTestCore()
	command.Dispatch(&command.Data{Kind: command.KindConfigGap, Gap: 42}, c)
	if c.Config.GapSize != 42 {
		t.Fatalf("expected gap updated to 42, got %d", c.Config.GapSize)
	}
	if c.Seat.Gap != 42 {
		t.Fatalf("expected seat gap mirrored, got %d", c.Seat.Gap)
	}
}
