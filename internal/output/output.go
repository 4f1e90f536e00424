// Package output tracks monitors, their left-to-right arrangement, and the
// geometric queries (output_box, real_usable_area, output_at) other
// packages need to translate between output-local and global coordinates.
package output

import (
	"fmt"

	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/geom"
)

// Output represents one monitor.
type Output struct {
	Handle backend.OutputHandle
	Name   string

	// Position is this output's top-left corner in global coordinates, as
	// placed by the layout (left-to-right, in registration order).
	Position geom.Point

	// Resolution is the output's full effective mode, in output-local
	// coordinates (origin 0,0).
	Resolution geom.Size

	// UsableArea is Resolution reduced by exclusive layer-shell zones, in
	// output-local coordinates. Starts out equal to the full resolution.
	UsableArea geom.Rect

	// LastPresentNanos is the timestamp of the most recent frame
	// presentation reported by the backend, in monotonic nanoseconds.
	LastPresentNanos int64
}

// Box returns the output's bounding rectangle in global coordinates.
func (o *Output) Box() geom.Rect {
	return geom.Rect{X: o.Position.X, Y: o.Position.Y, W: o.Resolution.W, H: o.Resolution.H}
}

// RealUsableArea returns UsableArea translated into global coordinates.
func (o *Output) RealUsableArea() geom.Rect {
	return o.UsableArea.Translate(o.Position.X, o.Position.Y)
}

// Manager owns the set of outputs and their left-to-right layout.
type Manager struct {
	// order preserves registration order, which is also left-to-right
	// placement order.
	order   []backend.OutputHandle
	outputs map[backend.OutputHandle]*Output

	// OnRegister, if set, is called after a new Output is registered and
	// arranged so callers (the core loop) can assign it a workspace and
	// trigger a render.
	OnRegister func(*Output)
}

// NewManager returns an empty output manager.
func NewManager() *Manager {
	return &Manager{outputs: make(map[backend.OutputHandle]*Output)}
}

// Register creates an Output for handle, with the given name and
// preferred mode, appends it to the layout (left of nothing, right of the
// last-registered output), and calls OnRegister. No enable request is
// sent to the backend. It returns the new Output.
func (m *Manager) Register(handle backend.OutputHandle, name string, mode geom.Size) *Output {
	x := int32(0)
	if len(m.order) > 0 {
		last := m.outputs[m.order[len(m.order)-1]]
		x = last.Box().Right()
	}
	o := &Output{
		Handle:     handle,
		Name:       name,
		Position:   geom.Point{X: x, Y: 0},
		Resolution: mode,
		UsableArea: geom.Rect{X: 0, Y: 0, W: mode.W, H: mode.H},
	}
	m.outputs[handle] = o
	m.order = append(m.order, handle)
	if m.OnRegister != nil {
		m.OnRegister(o)
	}
	return o
}

// Remove deletes the output with handle from the layout.
func (m *Manager) Remove(handle backend.OutputHandle) {
	delete(m.outputs, handle)
	for i, h := range m.order {
		if h == handle {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the Output for handle, if it is still registered.
func (m *Manager) Get(handle backend.OutputHandle) (*Output, bool) {
	o, ok := m.outputs[handle]
	return o, ok
}

// All returns outputs in left-to-right layout order.
func (m *Manager) All() []*Output {
	out := make([]*Output, 0, len(m.order))
	for _, h := range m.order {
		out = append(out, m.outputs[h])
	}
	return out
}

// At returns the output whose global-coordinate box contains (lx,ly).
func (m *Manager) At(lx, ly int32) (*Output, bool) {
	for _, h := range m.order {
		o := m.outputs[h]
		if o.Box().Contains(lx, ly) {
			return o, true
		}
	}
	return nil, false
}

// ErrUnknownOutput reports a handle the manager no longer (or never did)
// track. No Manager method returns it; Get reports a miss with its bool.
var ErrUnknownOutput = fmt.Errorf("output: unknown output handle")
