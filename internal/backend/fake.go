package backend

import "github.com/cardboardwm/cardboard/internal/geom"

// ConfigureCall records one Configure invocation, for assertions in tests.
type ConfigureCall struct {
	View ViewHandle
	Geo  geom.Rect
}

// Fake is an in-memory Backend double. Tests push events onto its channel
// directly (via Push) and inspect the recorded calls afterward; it never
// talks to a real display server.
type Fake struct {
	events chan Event

	Configured       []ConfigureCall
	LayersConfigured []ConfigureCall
	Fullscreened     map[ViewHandle]bool
	Activated        map[ViewHandle]bool
	KeyboardEnter    []ViewHandle
	Closed           []ViewHandle
	PopupsClosed     []ViewHandle
	Transients       map[[2]ViewHandle]bool
	Rendered         []OutputHandle

	nextOutput OutputHandle
	nextView   ViewHandle
	nextLayer  LayerHandle
}

// NewFake returns a ready-to-use fake backend with a buffered event
// channel large enough for typical test scenarios.
func NewFake() *Fake {
	return &Fake{
		events:       make(chan Event, 256),
		Fullscreened: make(map[ViewHandle]bool),
		Activated:    make(map[ViewHandle]bool),
		Transients:   make(map[[2]ViewHandle]bool),
	}
}

func (f *Fake) Events() <-chan Event { return f.events }

// Push enqueues an event as if the backend produced it.
func (f *Fake) Push(e Event) { f.events <- e }

// NextOutput, NextView and NextLayer mint fresh handles the way a real
// backend would assign them on "new" events.
func (f *Fake) NextOutput() OutputHandle { f.nextOutput++; return f.nextOutput }
func (f *Fake) NextView() ViewHandle     { f.nextView++; return f.nextView }
func (f *Fake) NextLayer() LayerHandle   { f.nextLayer++; return f.nextLayer }

func (f *Fake) Configure(v ViewHandle, geo geom.Rect) error {
	f.Configured = append(f.Configured, ConfigureCall{View: v, Geo: geo})
	return nil
}

func (f *Fake) ConfigureLayer(l LayerHandle, geo geom.Rect) error {
	f.LayersConfigured = append(f.LayersConfigured, ConfigureCall{View: ViewHandle(l), Geo: geo})
	return nil
}

func (f *Fake) SetFullscreen(v ViewHandle, fullscreen bool) error {
	f.Fullscreened[v] = fullscreen
	return nil
}

func (f *Fake) SetActivated(v ViewHandle, activated bool) error {
	f.Activated[v] = activated
	return nil
}

func (f *Fake) SendKeyboardEnter(v ViewHandle) error {
	f.KeyboardEnter = append(f.KeyboardEnter, v)
	return nil
}

func (f *Fake) CloseView(v ViewHandle) error {
	f.Closed = append(f.Closed, v)
	return nil
}

func (f *Fake) ClosePopups(v ViewHandle) error {
	f.PopupsClosed = append(f.PopupsClosed, v)
	return nil
}

func (f *Fake) SetTransientFor(child, parent ViewHandle, v bool) {
	f.Transients[[2]ViewHandle{child, parent}] = v
}

func (f *Fake) IsTransientFor(child, parent ViewHandle) bool {
	return f.Transients[[2]ViewHandle{child, parent}]
}

func (f *Fake) RequestRender(o OutputHandle) error {
	f.Rendered = append(f.Rendered, o)
	return nil
}
