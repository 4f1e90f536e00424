package seat

import (
	"testing"

	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/view"
	"github.com/cardboardwm/cardboard/internal/workspace"
)

type stubCap struct {
	handle backend.ViewHandle
}

func (s *stubCap) Resize(w, h int32) error                   { return nil }
func (s *stubCap) Move(x, y int32) error                      { return nil }
func (s *stubCap) SetActivated(active bool) error             { return nil }
func (s *stubCap) SetFullscreen(fullscreen bool) error         { return nil }
func (s *stubCap) Close() error                                { return nil }
func (s *stubCap) ClosePopups() error                          { return nil }
func (s *stubCap) IsTransientFor(other view.Capability) bool   { return false }
func (s *stubCap) Handle() backend.ViewHandle                  { return s.handle }

func newTestView(h backend.ViewHandle) *view.View {
	v := &view.View{Shell: &stubCap{handle: h}, Mapped: true, State: view.StateNormal}
	v.Geometry = geom.Rect{W: 200, H: 100}
	return v
}

func TestFocusViewMovesToFrontOfStack(t *testing.T) {
	fb := backend.NewFake()
	s := New(fb)
	a := newTestView(1)
	b := newTestView(2)

	if err := s.FocusView(a, nil, nil, nil); err != nil {
		t.Fatalf("FocusView(a): %v", err)
	}
	if err := s.FocusView(b, nil, nil, nil); err != nil {
		t.Fatalf("FocusView(b): %v", err)
	}
	if s.FocusedView() != b {
		t.Fatalf("expected b focused")
	}
	if err := s.FocusView(a, nil, nil, nil); err != nil {
		t.Fatalf("FocusView(a) again: %v", err)
	}
	if s.FocusedView() != a || s.FocusStack[1] != b {
		t.Fatalf("expected a at front, b second; got %+v", s.FocusStack)
	}
}

func TestMoveGrabRequiresPointerFocus(t *testing.T) {
	fb := backend.NewFake()
	s := New(fb)
	v := newTestView(1)

	if err := s.BeginMove(v); err == nil {
		t.Fatalf("expected error beginning move without pointer focus")
	}
	s.PointerFocus = v
	if err := s.BeginMove(v); err != nil {
		t.Fatalf("BeginMove: %v", err)
	}
	s.CursorX, s.CursorY = 10, 5
	delta, ok := s.ProcessCursorMove()
	if !ok {
		t.Fatalf("expected move delta")
	}
	if delta.X != v.X+10 || delta.Y != v.Y+5 {
		t.Fatalf("unexpected move delta %+v", delta)
	}
}

func TestResizeGrabClampsMinimumSize(t *testing.T) {
	fb := backend.NewFake()
	s := New(fb)
	v := newTestView(1)
	v.Geometry = geom.Rect{W: 10, H: 10}
	s.PointerFocus = v

	if err := s.BeginResize(v, backend.EdgeRight|backend.EdgeBottom, nil); err != nil {
		t.Fatalf("BeginResize: %v", err)
	}
	s.CursorX, s.CursorY = -100, -100
	delta, ok := s.ProcessCursorResize()
	if !ok {
		t.Fatalf("expected resize delta")
	}
	if delta.Box.W != 1 || delta.Box.H != 1 {
		t.Fatalf("expected clamped minimum size, got %+v", delta.Box)
	}
}

func TestSwipeInertiaScenario(t *testing.T) {
	fb := backend.NewFake()
	s := New(fb)
	ws := workspace.New(0)

	s.ProcessSwipeBegin(WorkspaceScrollFingers, ws)
	s.ProcessSwipeUpdate(50, 0)
	s.ProcessSwipeEnd()

	ticks := 0
	for {
		_, ended := s.UpdateSwipe()
		ticks++
		if ended {
			break
		}
		if ticks > 200 {
			t.Fatalf("swipe never settled")
		}
	}
	if ticks < 40 || ticks > 48 {
		t.Fatalf("expected roughly 43 ticks to settle, got %d", ticks)
	}
	if s.Grab.Kind != GrabIdle {
		t.Fatalf("expected grab idle after swipe settles")
	}
}

func TestHandleViewDestroyedEndsGrabAndStack(t *testing.T) {
	fb := backend.NewFake()
	s := New(fb)
	v := newTestView(1)
	s.PointerFocus = v
	_ = s.BeginMove(v)
	_ = s.FocusView(v, nil, nil, nil)

	s.HandleViewDestroyed(v)

	if s.Grab.Kind != GrabIdle {
		t.Fatalf("expected grab ended")
	}
	if len(s.FocusStack) != 0 {
		t.Fatalf("expected view removed from focus stack")
	}
}
