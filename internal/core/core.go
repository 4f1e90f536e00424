// Package core wires every engine package together into the single-
// threaded server loop: it owns the output/workspace/surface registries,
// the seat, the animation queue and the keybinding table, and implements
// command.Target so IPC-decoded commands and hotkey-bound commands run
// through the exact same dispatch path.
package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"time"

	"github.com/cardboardwm/cardboard/internal/animation"
	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/command"
	"github.com/cardboardwm/cardboard/internal/config"
	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/introspect"
	"github.com/cardboardwm/cardboard/internal/layer"
	"github.com/cardboardwm/cardboard/internal/output"
	"github.com/cardboardwm/cardboard/internal/seat"
	"github.com/cardboardwm/cardboard/internal/surfacemgr"
	"github.com/cardboardwm/cardboard/internal/view"
	"github.com/cardboardwm/cardboard/internal/viewops"
	"github.com/cardboardwm/cardboard/internal/workspace"
)

// Core is the server context. One instance exists per compositor run.
type Core struct {
	Config *config.Config
	Backend backend.Backend

	Outputs  *output.Manager
	Surfaces *surfacemgr.Manager
	Seat     *seat.Seat
	Anim     *animation.Queue
	Keys     *command.KeybindingTable
	Ops      *viewops.Ops

	workspaces        map[int]*workspace.Workspace
	workspaceByOutput map[backend.OutputHandle]*workspace.Workspace
	layerByHandle     map[backend.LayerHandle]*surfacemgr.LayerSurface

	QuitCode   int32
	quitCalled bool
	quitCh     chan struct{}

	// Logger receives structured diagnostics from the event loop, the same
	// way termtile's reconciler takes a *slog.Logger; defaults to
	// slog.Default() and can be overridden before Run.
	Logger *slog.Logger
}

// Sentinel errors for the command.Target methods below, matchable with
// errors.Is instead of formatted-string comparison.
var (
	ErrNoFocusedView    = errors.New("core: no focused view")
	ErrUnknownWorkspace = errors.New("core: focused view has no workspace")
)

// New wires a fresh Core around cfg and back. Outputs are assigned a
// workspace when they register (see onOutputRegistered), matching a simple single-workspace-per-monitor default that
// WorkspaceSwitch/WorkspaceMove commands can then repoint.
func New(cfg *config.Config, back backend.Backend) *Core {
	c := &Core{
		Config:            cfg,
		Backend:           back,
		Outputs:           output.NewManager(),
		Surfaces:          surfacemgr.NewManager(),
		Seat:              seat.New(back),
		Anim:              animation.NewQueue(),
		Keys:              command.NewKeybindingTable(),
		workspaces:        make(map[int]*workspace.Workspace),
		workspaceByOutput: make(map[backend.OutputHandle]*workspace.Workspace),
		layerByHandle:     make(map[backend.LayerHandle]*surfacemgr.LayerSurface),
		quitCh:            make(chan struct{}),
		Logger:            slog.Default(),
	}
	c.Seat.Gap = cfg.GapSize
	c.Ops = &viewops.Ops{
		Gap:       cfg.GapSize,
		Seat:      c.Seat,
		OutputOf:  c.outputOf,
		FocusView: c.focusView,
	}
	c.Outputs.OnRegister = c.onOutputRegistered
	return c
}

func (c *Core) workspaceFor(idx int) *workspace.Workspace {
	ws, ok := c.workspaces[idx]
	if !ok {
		ws = workspace.New(idx)
		c.workspaces[idx] = ws
	}
	return ws
}

func (c *Core) outputOf(ws *workspace.Workspace) *output.Output {
	if ws == nil || ws.Output == nil {
		return nil
	}
	o, _ := c.Outputs.Get(*ws.Output)
	return o
}

// onOutputRegistered finds an unassigned workspace (one left behind by a
// previously unplugged output) or creates a new one, and assigns it to o.
func (c *Core) onOutputRegistered(o *output.Output) {
	ws := c.freeWorkspace()
	if ws == nil {
		idx := len(c.workspaces)
		for c.workspaces[idx] != nil {
			idx++
		}
		ws = c.workspaceFor(idx)
	}
	handle := o.Handle
	ws.Output = &handle
	c.workspaceByOutput[handle] = ws
	c.Backend.RequestRender(o.Handle)
	c.Logger.Info("output registered", "output", o.Name, "workspace", ws.Index)
}

// freeWorkspace returns the lowest-indexed workspace with no output
// assigned, or nil if every known workspace is in use.
func (c *Core) freeWorkspace() *workspace.Workspace {
	indices := make([]int, 0, len(c.workspaces))
	for idx := range c.workspaces {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		if ws := c.workspaces[idx]; ws.Output == nil {
			return ws
		}
	}
	return nil
}

func (c *Core) clientIDOf(v *view.View) uint64 {
	// The backend contract exposes no identity distinct from the view's
	// own handle, so a view's handle stands in for its client identity.
	return uint64(v.Shell.Handle())
}

func (c *Core) transientCheck(child, parent *view.View) bool {
	if child == nil || parent == nil {
		return false
	}
	return child.Shell.IsTransientFor(parent.Shell)
}

func (c *Core) focusView(v *view.View) error {
	if v != nil {
		if ws := c.workspaces[v.WorkspaceIndex]; ws != nil && ws.FullscreenView != nil &&
			ws.FullscreenView != v && !c.transientCheck(v, ws.FullscreenView) {
			return fmt.Errorf("core: focus denied, workspace has a different fullscreen view")
		}
	}
	return c.Seat.FocusView(v, c.clientIDOf, c.transientCheck, c.fitAndRearrange)
}

// fitAndRearrange implements the FitFunc Seat.FocusView calls after
// activating v: it scrolls v's workspace to keep v visible, then re-runs
// the arrangement pass so every tile lands at its (possibly animated)
// target position.
func (c *Core) fitAndRearrange(v *view.View, _ *workspace.Workspace) {
	ws := c.workspaces[v.WorkspaceIndex]
	if ws == nil {
		return
	}
	out := c.outputOf(ws)
	if out == nil {
		return
	}
	if err := ws.FitViewOnScreen(v, out.RealUsableArea(), c.Config.GapSize, false); err != nil {
		return
	}
	c.rearrange(ws)
}

// rearrange recomputes ws's placements and animates every tile toward its
// new target, the way ViewAnimation is driven in the original design:
// geometry (width/height) is set immediately since clients need a
// configure before they can redraw at a new size, but position travels
// through the animation queue.
func (c *Core) rearrange(ws *workspace.Workspace) {
	out := c.outputOf(ws)
	if out == nil {
		return
	}
	placements := ws.Arrange(out.Box(), out.RealUsableArea(), c.Config.GapSize)
	for _, p := range placements {
		p.View.Geometry.W = p.Width
		p.View.Geometry.H = p.Height
		c.Backend.Configure(p.View.Shell.Handle(), geom.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height})
		c.Anim.CancelTasks(p.View)
		c.Anim.Enqueue(p.View, p.X, p.Y, c.Config.AnimationDurationSeconds, nil)
	}
}

// Run is the blocking single-threaded event loop: it selects over backend
// events and a fixed-period animation tick, exiting when Quit is called
// (command KindQuit) or the backend's event channel closes.
func (c *Core) Run() int32 {
	tickPeriod := time.Duration(c.Config.AnimationMillis) * time.Millisecond
	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case e, ok := <-c.Backend.Events():
			if !ok {
				return c.QuitCode
			}
			c.handleEvent(e)
		case <-ticker.C:
			c.Anim.Tick(tickPeriod.Seconds())
		case <-c.quitCh:
			return c.QuitCode
		}
	}
}

func (c *Core) handleEvent(e backend.Event) {
	switch e.Kind {
	case backend.EventNewOutput:
		c.Outputs.Register(e.Output, e.OutputName, e.OutputResolution)
	case backend.EventDestroyOutput:
		c.handleDestroyOutput(e.Output)
	case backend.EventNewView:
		c.handleNewView(e)
	case backend.EventMapView:
		c.handleMapView(e.View)
	case backend.EventUnmapView:
		c.handleUnmapView(e.View)
	case backend.EventDestroyView:
		c.handleDestroyView(e.View)
	case backend.EventCommitView:
		c.handleCommitView(e.View)
	case backend.EventNewLayerSurface:
		c.handleNewLayerSurface(e)
	case backend.EventMapLayerSurface:
		c.handleMapLayerSurface(e.Layer)
	case backend.EventUnmapLayerSurface:
		c.handleUnmapLayerSurface(e.Layer)
	case backend.EventDestroyLayerSurface:
		c.handleDestroyLayerSurface(e.Layer)
	case backend.EventPointerMotion:
		c.handlePointerMotion(e.X, e.Y)
	case backend.EventPointerButton:
		c.handlePointerButton(e.Button, e.Pressed)
	case backend.EventKey:
		c.handleKey(e.Modifiers, e.Keysym, e.KeyPressed)
	case backend.EventSwipeBegin:
		c.handleSwipeBegin(e.Fingers)
	case backend.EventSwipeUpdate:
		c.Seat.ProcessSwipeUpdate(e.DX, e.DY)
	case backend.EventSwipeEnd:
		c.handleSwipeEnd()
	case backend.EventFrame:
		c.handleFrame(e.Output)
	}
}

func (c *Core) viewByHandle(h backend.ViewHandle) *view.View {
	for _, v := range c.Surfaces.Views() {
		if v.Shell.Handle() == h {
			return v
		}
	}
	return nil
}

func (c *Core) handleNewView(e backend.Event) {
	sc := &shellCapability{back: c.Backend, handle: e.View}
	c.Surfaces.NewView(sc)
}

func (c *Core) handleMapView(h backend.ViewHandle) {
	v := c.viewByHandle(h)
	if v == nil {
		return
	}
	c.Surfaces.MapView(v)
	ws := c.GetFocusedWorkspace()
	if ws == nil {
		return
	}
	ws.AddView(v, nil, false, false)
	c.rearrange(ws)
	c.focusView(v)
}

func (c *Core) handleUnmapView(h backend.ViewHandle) {
	v := c.viewByHandle(h)
	if v == nil {
		return
	}
	c.Surfaces.UnmapView(v)
	if ws := c.workspaces[v.WorkspaceIndex]; ws != nil {
		ws.RemoveView(v)
		c.rearrange(ws)
	}
	c.Seat.HandleViewDestroyed(v)
}

func (c *Core) handleDestroyView(h backend.ViewHandle) {
	c.handleUnmapView(h)
}

func (c *Core) handleCommitView(h backend.ViewHandle) {
	v := c.viewByHandle(h)
	if v == nil {
		return
	}
	workspace.FinishRecovery(v)
}

func (c *Core) handleNewLayerSurface(e backend.Event) {
	ls := &surfacemgr.LayerSurface{
		Handle:              e.Layer,
		Output:              e.Output,
		Layer:               e.LayerDesc.Layer,
		Anchor:              e.LayerDesc.Anchor,
		DesiredW:            e.LayerDesc.DesiredW,
		DesiredH:            e.LayerDesc.DesiredH,
		MarginTop:           e.LayerDesc.MarginTop,
		MarginBottom:        e.LayerDesc.MarginBottom,
		MarginLeft:          e.LayerDesc.MarginLeft,
		MarginRight:         e.LayerDesc.MarginRight,
		ExclusiveZone:       e.LayerDesc.ExclusiveZone,
		KeyboardInteractive: e.LayerDesc.KeyboardInteractive,
	}
	c.layerByHandle[e.Layer] = ls
	c.Surfaces.AddLayerSurface(ls)
}

func (c *Core) handleMapLayerSurface(h backend.LayerHandle) {
	ls := c.layerByHandle[h]
	if ls == nil {
		return
	}
	ls.Mapped = true
	c.rearrangeLayersOn(ls.Output)
}

func (c *Core) handleUnmapLayerSurface(h backend.LayerHandle) {
	ls := c.layerByHandle[h]
	if ls == nil {
		return
	}
	ls.Mapped = false
	c.rearrangeLayersOn(ls.Output)
}

func (c *Core) handleDestroyLayerSurface(h backend.LayerHandle) {
	ls := c.layerByHandle[h]
	if ls == nil {
		return
	}
	c.Surfaces.RemoveLayerSurface(ls)
	delete(c.layerByHandle, h)
	c.rearrangeLayersOn(ls.Output)
}

// rearrangeLayersOn re-runs the layer-shell layout for oh after any layer
// surface maps, unmaps, is destroyed, or changes size: it updates the
// output's usable area, closes any surface whose box went negative, then
// either plain-rearranges the output's workspace or (if the usable area
// actually changed and the focused view lives there) fits the focused
// view back on screen, per the Layers.cpp ordering. It finishes by
// resolving keyboard-interactive layer focus across the whole output,
// since unmapping the previously focused layer can require falling back
// to the next-topmost one or clearing layer focus entirely.
func (c *Core) rearrangeLayersOn(oh backend.OutputHandle) {
	o, ok := c.Outputs.Get(oh)
	if !ok {
		return
	}
	result := layer.Arrange(o.Resolution, o.Position, c.Surfaces, oh, o.UsableArea)
	o.UsableArea = result.UsableArea
	for _, closed := range result.Closed {
		closed.Mapped = false
		c.Backend.CloseView(backend.ViewHandle(closed.Handle))
	}

	if ws := c.workspaceByOutput[oh]; ws != nil {
		if focused := c.Seat.FocusedView(); result.Changed && focused != nil && focused.WorkspaceIndex == ws.Index {
			ws.FitViewOnScreen(focused, o.RealUsableArea(), c.Config.GapSize, false)
		} else {
			c.rearrange(ws)
		}
	}

	switch top := layer.TopmostKeyboardInteractive(c.Surfaces, oh); {
	case top != nil:
		c.Seat.FocusLayer(top)
	case c.Seat.FocusedLayer != nil && c.Seat.FocusedLayer.Output == oh && !c.Seat.FocusedLayer.KeyboardInteractive:
		c.Seat.FocusLayer(nil)
	}
}

func (c *Core) handlePointerMotion(x, y float64) {
	c.Seat.CursorX, c.Seat.CursorY = x, y
	if md, ok := c.Seat.ProcessCursorMove(); ok {
		ws := c.workspaces[md.View.WorkspaceIndex]
		if ws != nil {
			c.Ops.ReconfigurePosition(md.View, ws, md.X, md.Y, false)
		}
	}
	if rd, ok := c.Seat.ProcessCursorResize(); ok {
		ws := c.workspaces[rd.View.WorkspaceIndex]
		if ws != nil {
			c.Ops.ReconfigureSize(rd.View, ws, rd.Box.W, rd.Box.H)
			c.rearrange(ws)
		}
	}

	o, ok := c.Outputs.At(int32(x), int32(y))
	if !ok {
		return
	}
	ws := c.workspaceByOutput[o.Handle]
	hit := c.Surfaces.GetSurfaceUnderCursor(x, y, o.Handle, ws)
	c.Seat.PointerFocus = hit.View
}

func (c *Core) handlePointerButton(button uint32, pressed bool) {
	if !pressed {
		c.Seat.EndInteractive()
		return
	}
	if v := c.Seat.PointerFocus; v != nil {
		c.focusView(v)
	}
}

func (c *Core) handleKey(mods uint32, key string, pressed bool) {
	if !pressed {
		return
	}
	data, ok := c.Keys.Lookup(mods, key)
	if !ok {
		return
	}
	command.Dispatch(data, c)
}

func (c *Core) handleSwipeBegin(fingers int) {
	ws := c.GetFocusedWorkspace()
	if ws == nil {
		return
	}
	c.Seat.ProcessSwipeBegin(fingers, ws)
}

func (c *Core) handleSwipeEnd() {
	c.Seat.ProcessSwipeEnd()
}

// handleFrame drives one inertia tick of an active touchpad
// workspace-scroll grab: UpdateSwipe advances the friction simulation and
// reports the new ScrollX to apply; once the grab ends, the dominant view
// under the settled scroll position is refocused.
func (c *Core) handleFrame(oh backend.OutputHandle) {
	c.Outputs.Get(oh) // presentation timestamp bookkeeping is a no-op here
	if c.Seat.Grab.Kind != seat.GrabWorkspaceScroll {
		return
	}
	ws := c.Seat.Grab.WorkspaceScroll.Workspace
	scrollX, ended := c.Seat.UpdateSwipe()
	if ws == nil {
		return
	}
	ws.ScrollX = scrollX
	c.rearrange(ws)
	if !ended {
		return
	}
	out := c.outputOf(ws)
	if out == nil {
		return
	}
	if v := ws.FindDominantView(c.Seat.FocusedView(), c.Seat.FocusStack, out.RealUsableArea(), c.Config.GapSize); v != nil {
		c.focusView(v)
	}
}

// GetFocusedWorkspace returns the workspace under the current cursor
// position, falling back to the first registered output's workspace.
func (c *Core) GetFocusedWorkspace() *workspace.Workspace {
	outs := c.Outputs.All()
	if len(outs) == 0 {
		return nil
	}
	for _, o := range outs {
		box := o.Box()
		if box.Contains(int32(c.Seat.CursorX), int32(c.Seat.CursorY)) {
			return c.workspaceByOutput[o.Handle]
		}
	}
	return c.workspaceByOutput[outs[0].Handle]
}

func (c *Core) handleDestroyOutput(h backend.OutputHandle) {
	ws := c.workspaceByOutput[h]
	if ws != nil {
		ws.Output = nil
		delete(c.workspaceByOutput, h)
	}
	c.Outputs.Remove(h)
}

// --- command.Target ---

func (c *Core) Quit(code int32) {
	c.QuitCode = code
	if !c.quitCalled {
		c.quitCalled = true
		close(c.quitCh)
	}
}

func (c *Core) FocusDirection(d command.Direction) error {
	v := c.Seat.FocusedView()
	if v == nil {
		return ErrNoFocusedView
	}
	ws := c.workspaces[v.WorkspaceIndex]
	if ws == nil {
		return ErrUnknownWorkspace
	}
	next := adjacentView(ws, v, d)
	if next == nil {
		return fmt.Errorf("core: no view in that direction")
	}
	return c.focusView(next)
}

func (c *Core) FocusCycle() error {
	views := c.Surfaces.Views()
	if len(views) == 0 {
		return fmt.Errorf("core: no views to cycle")
	}
	cur := c.Seat.FocusedView()
	idx := 0
	for i, v := range views {
		if v == cur {
			idx = (i + 1) % len(views)
			break
		}
	}
	return c.focusView(views[idx])
}

func (c *Core) Exec(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("core: exec requires a command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("core: exec %s: %w", argv[0], err)
	}
	go cmd.Wait()
	return nil
}

func (c *Core) Bind(mods uint32, key string, inner *command.Data) {
	c.Keys.Bind(mods, key, inner)
}

func (c *Core) CloseFocused() error {
	v := c.Seat.FocusedView()
	if v == nil {
		return ErrNoFocusedView
	}
	return v.Shell.Close()
}

func (c *Core) WorkspaceSwitch(n int32) error {
	ws := c.GetFocusedWorkspace()
	if ws == nil {
		return fmt.Errorf("core: no focused output")
	}
	out := c.outputOf(ws)
	if out == nil {
		return fmt.Errorf("core: workspace has no output")
	}
	target := c.workspaceFor(int(n))
	if target.Output != nil {
		return fmt.Errorf("core: workspace %d is already shown on another output", n)
	}
	ws.Output = nil
	delete(c.workspaceByOutput, out.Handle)
	handle := out.Handle
	target.Output = &handle
	c.workspaceByOutput[out.Handle] = target
	c.rearrange(target)
	if v := target.FindDominantView(nil, c.Seat.FocusStack, out.RealUsableArea(), c.Config.GapSize); v != nil {
		return c.focusView(v)
	}
	return nil
}

func (c *Core) WorkspaceMove(n int32) error {
	v := c.Seat.FocusedView()
	if v == nil {
		return ErrNoFocusedView
	}
	oldWS := c.workspaces[v.WorkspaceIndex]
	newWS := c.workspaceFor(int(n))
	return c.Ops.ChangeViewWorkspace(v, oldWS, newWS)
}

// ToggleFloating implements the ToggleFloating command: swap state; if
// becoming tiled, insert at the end of the workspace; if becoming
// floating, restore the size remembered from the last float/tile
// transition; then fit_view_on_screen of the view that left a "hole",
// matching commands::toggle_floating.
func (c *Core) ToggleFloating() error {
	v := c.Seat.FocusedView()
	if v == nil {
		return ErrNoFocusedView
	}
	ws := c.workspaces[v.WorkspaceIndex]
	if ws == nil {
		return ErrUnknownWorkspace
	}

	if v.State == view.StateFullscreen && v.HasSaved {
		v.SavedState.W, v.PreviousSize.W = v.PreviousSize.W, v.SavedState.W
		v.SavedState.H, v.PreviousSize.H = v.PreviousSize.H, v.SavedState.H
	} else {
		prev := v.PreviousSize
		v.PreviousSize = geom.Size{W: v.Geometry.W, H: v.Geometry.H}
		if prev.W > 0 && prev.H > 0 {
			v.Geometry.W, v.Geometry.H = prev.W, prev.H
		}
	}

	becomingFloating := !v.Floating
	ws.RemoveView(v)
	ws.AddView(v, nil, becomingFloating, true)
	v.WorkspaceIndex = ws.Index
	c.rearrange(ws)

	out := c.outputOf(ws)
	if out == nil {
		return nil
	}
	if becomingFloating {
		for _, fv := range c.Seat.FocusStack {
			if fv == v || fv.WorkspaceIndex != ws.Index {
				continue
			}
			ws.FitViewOnScreen(fv, out.RealUsableArea(), c.Config.GapSize, true)
			break
		}
	} else {
		ws.FitViewOnScreen(v, out.RealUsableArea(), c.Config.GapSize, false)
	}
	return nil
}

// Move implements the Move{dx,dy} command: a floating view is moved
// directly via ReconfigurePosition; a tiled view instead swaps places
// with the adjacent column (sign of dx) and/or the adjacent tile within
// its column (sign of dy), matching commands::move, then fits the moved
// view back on screen.
func (c *Core) Move(dx, dy int32) error {
	v := c.Seat.FocusedView()
	if v == nil {
		return ErrNoFocusedView
	}
	ws := c.workspaces[v.WorkspaceIndex]
	if ws == nil {
		return ErrUnknownWorkspace
	}

	if v.Floating {
		c.Ops.ReconfigurePosition(v, ws, v.X+dx, v.Y+dy, true)
		return nil
	}

	col, colIdx := columnOf(ws, v)
	if col == nil {
		return fmt.Errorf("core: focused view is not tiled")
	}

	if dx != 0 {
		step := 1
		if dx < 0 {
			step = -1
		}
		if other := colIdx + step; other >= 0 && other < len(ws.Columns) {
			ws.Columns[colIdx], ws.Columns[other] = ws.Columns[other], ws.Columns[colIdx]
			col = ws.Columns[other]
		}
	}

	if dy != 0 && len(col.Tiles) > 1 {
		tileIdx := -1
		for i, t := range col.Tiles {
			if t.View == v {
				tileIdx = i
				break
			}
		}
		if tileIdx >= 0 {
			step := 1
			if dy < 0 {
				step = -1
			}
			n := len(col.Tiles)
			other := ((tileIdx-step)%n + n) % n
			col.Tiles[tileIdx], col.Tiles[other] = col.Tiles[other], col.Tiles[tileIdx]
		}
	}

	c.rearrange(ws)
	if out := c.outputOf(ws); out != nil {
		ws.FitViewOnScreen(v, out.RealUsableArea(), c.Config.GapSize, false)
	}
	return nil
}

func (c *Core) Resize(w, h int32) error {
	v := c.Seat.FocusedView()
	if v == nil {
		return ErrNoFocusedView
	}
	ws := c.workspaces[v.WorkspaceIndex]
	if ws == nil {
		return ErrUnknownWorkspace
	}
	c.Ops.ReconfigureSize(v, ws, w, h)
	c.rearrange(ws)
	return nil
}

func (c *Core) InsertIntoColumn() error {
	v := c.Seat.FocusedView()
	if v == nil {
		return ErrNoFocusedView
	}
	ws := c.workspaces[v.WorkspaceIndex]
	if ws == nil {
		return ErrUnknownWorkspace
	}
	col, idx := columnOf(ws, v)
	if col == nil {
		return fmt.Errorf("core: focused view is not tiled")
	}
	target := nextColumn(ws, idx)
	if target == nil {
		return fmt.Errorf("core: no column to the right")
	}
	if err := ws.InsertIntoColumn(v, target); err != nil {
		return err
	}
	c.rearrange(ws)
	return nil
}

func (c *Core) PopFromColumn() error {
	v := c.Seat.FocusedView()
	if v == nil {
		return ErrNoFocusedView
	}
	ws := c.workspaces[v.WorkspaceIndex]
	if ws == nil {
		return ErrUnknownWorkspace
	}
	col, _ := columnOf(ws, v)
	if col == nil {
		return fmt.Errorf("core: focused view is not tiled")
	}
	if err := ws.PopFromColumn(col); err != nil {
		return err
	}
	c.rearrange(ws)
	return nil
}

func (c *Core) ConfigMouseMod(mods uint32) { c.Config.MouseMods = mods }

func (c *Core) ConfigGap(px int32) {
	c.Config.GapSize = px
	c.Seat.Gap = px
	c.Ops.Gap = px
}

func (c *Core) ConfigFocusColor(r, g, b, a float64) {
	c.Config.FocusColor = config.Color{R: r, G: g, B: b, A: a}
}

// widthRatios are the preset fractions of usable width CycleWidth steps
// through, smallest to largest, wrapping back to the smallest.
var widthRatios = []float64{1.0 / 3, 1.0 / 2, 2.0 / 3, 1.0}

func (c *Core) CycleWidth() error {
	v := c.Seat.FocusedView()
	if v == nil {
		return ErrNoFocusedView
	}
	ws := c.workspaces[v.WorkspaceIndex]
	if ws == nil || v.Floating {
		return fmt.Errorf("core: focused view is not tiled")
	}
	out := c.outputOf(ws)
	if out == nil {
		return fmt.Errorf("core: workspace has no output")
	}
	usable := out.RealUsableArea()
	currentRatio := float64(v.Geometry.W) / float64(usable.W)
	next := widthRatios[0]
	for i, r := range widthRatios {
		if currentRatio < r-0.02 {
			next = r
			break
		}
		if i == len(widthRatios)-1 {
			next = widthRatios[0]
		}
	}
	c.Ops.ReconfigureSize(v, ws, int32(float64(usable.W)*next), v.Geometry.H)
	c.rearrange(ws)
	return nil
}

// --- command.Target query methods ---

func (c *Core) ListOutputs() string {
	outs := c.Outputs.All()
	snaps := make([]introspect.OutputSnapshot, 0, len(outs))
	for _, o := range outs {
		idx := -1
		if ws := c.workspaceByOutput[o.Handle]; ws != nil {
			idx = ws.Index
		}
		box := o.Box()
		snaps = append(snaps, introspect.OutputSnapshot{
			Name: o.Name, X: box.X, Y: box.Y, W: box.W, H: box.H,
			WorkspaceIndex: idx,
		})
	}
	return encodeJSON(snaps)
}

func (c *Core) ListWorkspaces() string {
	indices := make([]int, 0, len(c.workspaces))
	for idx := range c.workspaces {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	snaps := make([]introspect.WorkspaceSnapshot, 0, len(indices))
	for _, idx := range indices {
		ws := c.workspaces[idx]
		viewCount := len(ws.FloatingViews)
		for _, col := range ws.Columns {
			viewCount += len(col.Tiles)
		}
		outName := ""
		if out := c.outputOf(ws); out != nil {
			outName = out.Name
		}
		snaps = append(snaps, introspect.WorkspaceSnapshot{
			Index: ws.Index, OutputName: outName, Active: ws.Output != nil,
			Columns: len(ws.Columns), ViewCount: viewCount,
		})
	}
	return encodeJSON(snaps)
}

func (c *Core) ListViews() string {
	views := c.Surfaces.Views()
	snaps := make([]introspect.ViewSnapshot, 0, len(views))
	for _, v := range views {
		snaps = append(snaps, introspect.ViewSnapshot{
			Handle:         uint64(v.Shell.Handle()),
			WorkspaceIndex: v.WorkspaceIndex,
			Mapped:         v.Mapped,
			Floating:       v.Floating,
			Fullscreen:     v.State == view.StateFullscreen,
			X:              v.X, Y: v.Y,
			W: v.Geometry.W, H: v.Geometry.H,
		})
	}
	return encodeJSON(snaps)
}

func (c *Core) GetStatus() string {
	var focused uint64
	if v := c.Seat.FocusedView(); v != nil {
		focused = uint64(v.Shell.Handle())
	}
	return encodeJSON(introspect.Status{
		OutputCount:    len(c.Outputs.All()),
		WorkspaceCount: len(c.workspaces),
		ViewCount:      len(c.Surfaces.Views()),
		FocusedHandle:  focused,
	})
}

func encodeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func columnOf(ws *workspace.Workspace, v *view.View) (*workspace.Column, int) {
	for i, col := range ws.Columns {
		for _, t := range col.Tiles {
			if t.View == v {
				return col, i
			}
		}
	}
	return nil, -1
}

func nextColumn(ws *workspace.Workspace, idx int) *workspace.Column {
	if idx+1 < len(ws.Columns) {
		return ws.Columns[idx+1]
	}
	return nil
}

func adjacentView(ws *workspace.Workspace, v *view.View, d command.Direction) *view.View {
	col, colIdx := columnOf(ws, v)
	switch d {
	case command.DirLeft:
		if colIdx > 0 {
			return firstEligible(ws.Columns[colIdx-1])
		}
	case command.DirRight:
		if colIdx >= 0 && colIdx+1 < len(ws.Columns) {
			return firstEligible(ws.Columns[colIdx+1])
		}
	case command.DirUp, command.DirDown:
		if col == nil {
			return nil
		}
		tileIdx := -1
		for i, t := range col.Tiles {
			if t.View == v {
				tileIdx = i
				break
			}
		}
		if tileIdx < 0 {
			return nil
		}
		step := 1
		if d == command.DirUp {
			step = -1
		}
		ni := tileIdx + step
		if ni >= 0 && ni < len(col.Tiles) {
			return col.Tiles[ni].View
		}
	}
	return nil
}

func firstEligible(col *workspace.Column) *view.View {
	for _, t := range col.Tiles {
		if t.View.Mapped {
			return t.View
		}
	}
	return nil
}
