package core

import (
	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/view"
)

// shellCapability adapts a raw backend.ViewHandle to view.Capability by
// forwarding every call through the shared backend.Backend. Every mapped
// view gets exactly one of these, regardless of whether it came in as an
// xdg-toplevel or an xwayland-regular surface: the backend itself already
// folded that distinction away into a plain ViewHandle.
type shellCapability struct {
	back   backend.Backend
	handle backend.ViewHandle
}

func (c *shellCapability) Resize(w, h int32) error {
	return c.back.Configure(c.handle, geom.Rect{W: w, H: h})
}

func (c *shellCapability) Move(x, y int32) error {
	return c.back.Configure(c.handle, geom.Rect{X: x, Y: y})
}

func (c *shellCapability) SetActivated(active bool) error {
	return c.back.SetActivated(c.handle, active)
}

func (c *shellCapability) SetFullscreen(fullscreen bool) error {
	return c.back.SetFullscreen(c.handle, fullscreen)
}

func (c *shellCapability) Close() error { return c.back.CloseView(c.handle) }

func (c *shellCapability) ClosePopups() error { return c.back.ClosePopups(c.handle) }

func (c *shellCapability) IsTransientFor(other view.Capability) bool {
	if other == nil {
		return false
	}
	return c.back.IsTransientFor(c.handle, other.Handle())
}

func (c *shellCapability) Handle() backend.ViewHandle { return c.handle }
