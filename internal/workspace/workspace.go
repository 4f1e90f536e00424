// Package workspace implements the scrollable-tiling model: columns of
// tiles, floating views, fullscreen, horizontal scroll, and the
// arrange_workspace / fit_view_on_screen / find_dominant_view algorithms
// that are cardboard's signature layout engine.
package workspace

import (
	"fmt"

	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/view"
)

// DominantVisibilityHysteresis is the minimum visibility margin another
// column must beat the focused column by before find_dominant_view will
// switch away from the currently focused view.
const DominantVisibilityHysteresis = 0.01

// Tile is a view's slot inside a column.
type Tile struct {
	View          *view.View
	VerticalScale float64
	Column        *Column
}

// Column is an ordered, vertically-stacked sequence of tiles.
type Column struct {
	Tiles []*Tile
}

// MaxWidth returns the maximum current geometry width among the column's
// mapped, normal-state tiles, or 0 if there are none.
func (c *Column) MaxWidth() int32 {
	var max int32
	for _, t := range c.Tiles {
		if !eligible(t.View) {
			continue
		}
		if t.View.Geometry.W > max {
			max = t.View.Geometry.W
		}
	}
	return max
}

func eligible(v *view.View) bool {
	return v.Mapped && v.State == view.StateNormal
}

func (c *Column) scaleSum() float64 {
	var sum float64
	for _, t := range c.Tiles {
		if eligible(t.View) {
			sum += t.VerticalScale
		}
	}
	return sum
}

func (c *Column) hasEligible() bool {
	for _, t := range c.Tiles {
		if eligible(t.View) {
			return true
		}
	}
	return false
}

func (c *Column) indexOf(v *view.View) int {
	for i, t := range c.Tiles {
		if t.View == v {
			return i
		}
	}
	return -1
}

// Workspace is a numbered plane of tiled columns, floating views and an
// optional fullscreen view.
type Workspace struct {
	Index int

	// Output, if non-nil, is the output this workspace is assigned to. A
	// workspace is "active" iff Output != nil.
	Output *backend.OutputHandle

	ScrollX int32

	Columns        []*Column
	FloatingViews  []*view.View // front = most-recently-floated
	FullscreenView *view.View
}

// New returns an empty, unassigned workspace with the given stable index.
func New(index int) *Workspace {
	return &Workspace{Index: index}
}

// IsActive reports whether the workspace is assigned to an output.
func (w *Workspace) IsActive() bool { return w.Output != nil }

// ErrNotMember is returned when an operation references a view that is
// not currently part of this workspace.
var ErrNotMember = fmt.Errorf("workspace: view is not a member")

func (w *Workspace) columnOf(v *view.View) (*Column, int) {
	for _, c := range w.Columns {
		if idx := c.indexOf(v); idx >= 0 {
			return c, idx
		}
	}
	return nil, -1
}

func (w *Workspace) columnIndex(c *Column) int {
	for i, cc := range w.Columns {
		if cc == c {
			return i
		}
	}
	return -1
}

func (w *Workspace) indexOfFloating(v *view.View) int {
	for i, fv := range w.FloatingViews {
		if fv == v {
			return i
		}
	}
	return -1
}

// AddView inserts v into the workspace. Floating views are inserted
// immediately after nextTo in FloatingViews (front if nextTo is nil).
// Tiled views get a brand new column immediately to the right of nextTo's
// column (or appended at the end if nextTo is nil), containing a single
// tile. If transferring is false, v.WorkspaceIndex is set to this
// workspace's index (transferring views keep their in-flight workspace
// bookkeeping to the caller, per ViewOperations.change_view_workspace).
func (w *Workspace) AddView(v *view.View, nextTo *view.View, floating, transferring bool) {
	v.Floating = floating
	if floating {
		idx := 0
		if nextTo != nil {
			if i := w.indexOfFloating(nextTo); i >= 0 {
				idx = i + 1
			}
		}
		w.FloatingViews = append(w.FloatingViews, nil)
		copy(w.FloatingViews[idx+1:], w.FloatingViews[idx:])
		w.FloatingViews[idx] = v
	} else {
		col := &Column{Tiles: []*Tile{{View: v, VerticalScale: 1, Column: nil}}}
		col.Tiles[0].Column = col
		insertAt := len(w.Columns)
		if nextTo != nil {
			if c, _ := w.columnOf(nextTo); c != nil {
				insertAt = w.columnIndex(c) + 1
			}
		}
		w.Columns = append(w.Columns, nil)
		copy(w.Columns[insertAt+1:], w.Columns[insertAt:])
		w.Columns[insertAt] = col
	}
	if !transferring {
		v.WorkspaceIndex = w.Index
	}
}

// RemoveView removes v from wherever it currently sits (floating or
// tiled), collapsing an emptied column eagerly.
func (w *Workspace) RemoveView(v *view.View) {
	if i := w.indexOfFloating(v); i >= 0 {
		w.FloatingViews = append(w.FloatingViews[:i], w.FloatingViews[i+1:]...)
		if w.FullscreenView == v {
			w.FullscreenView = nil
		}
		return
	}
	if c, idx := w.columnOf(v); c != nil {
		c.Tiles = append(c.Tiles[:idx], c.Tiles[idx+1:]...)
		if len(c.Tiles) == 0 {
			ci := w.columnIndex(c)
			w.Columns = append(w.Columns[:ci], w.Columns[ci+1:]...)
		}
	}
	if w.FullscreenView == v {
		w.FullscreenView = nil
	}
}

// InsertIntoColumn moves v out of its current column and into target,
// setting its geometry width to target's max width. Collapses the
// source column if it becomes empty.
func (w *Workspace) InsertIntoColumn(v *view.View, target *Column) error {
	src, idx := w.columnOf(v)
	if src == nil {
		return ErrNotMember
	}
	tile := src.Tiles[idx]
	src.Tiles = append(src.Tiles[:idx], src.Tiles[idx+1:]...)
	if len(src.Tiles) == 0 {
		ci := w.columnIndex(src)
		w.Columns = append(w.Columns[:ci], w.Columns[ci+1:]...)
	}
	mw := target.MaxWidth()
	tile.Column = target
	target.Tiles = append(target.Tiles, tile)
	if mw > 0 {
		v.Geometry.W = mw
	}
	return nil
}

// PopFromColumn moves the last tile of col into a brand new column
// immediately to its right.
func (w *Workspace) PopFromColumn(col *Column) error {
	if len(col.Tiles) == 0 {
		return ErrNotMember
	}
	ci := w.columnIndex(col)
	if ci < 0 {
		return ErrNotMember
	}
	tile := col.Tiles[len(col.Tiles)-1]
	col.Tiles = col.Tiles[:len(col.Tiles)-1]
	newCol := &Column{Tiles: []*Tile{tile}}
	tile.Column = newCol
	insertAt := ci + 1
	w.Columns = append(w.Columns, nil)
	copy(w.Columns[insertAt+1:], w.Columns[insertAt:])
	w.Columns[insertAt] = newCol
	if len(col.Tiles) == 0 {
		w.Columns = append(w.Columns[:ci], w.Columns[ci+1:]...)
	}
	return nil
}

// Placement is one view's computed target geometry from an arrangement
// pass. Callers either snap the view directly to it or enqueue an
// animation task toward it.
type Placement struct {
	View          *view.View
	X, Y          int32
	Width, Height int32
}

// Arrange runs the horizontal-tiling layout algorithm over outputBox (the
// output's box in global coordinates) and usableArea (output-local,
// reduced by layer-shell exclusive zones), with the given inter-tile gap.
// It returns the computed placement for every eligible tile, plus the
// fullscreen view's placement (pre-positioned to fill the whole output
// box) if one is set.
func (w *Workspace) Arrange(outputBox, usableArea geom.Rect, gap int32) []Placement {
	var placements []Placement

	if w.FullscreenView != nil {
		placements = append(placements, Placement{
			View: w.FullscreenView, X: outputBox.X, Y: outputBox.Y,
			Width: outputBox.W, Height: outputBox.H,
		})
	}

	accWidth := int32(0)
	for _, col := range w.Columns {
		if !col.hasEligible() {
			continue
		}
		scaleSum := col.scaleSum()
		maxWidth := col.MaxWidth()
		columnX := outputBox.X + accWidth - w.ScrollX

		n := int32(0)
		for _, t := range col.Tiles {
			if eligible(t.View) {
				n++
			}
		}
		currentY := outputBox.Y + usableArea.Y + gap
		for _, t := range col.Tiles {
			if !eligible(t.View) {
				continue
			}
			height := int32(float64(usableArea.H-(n+1)*gap) * t.VerticalScale / scaleSum)
			x := columnX + t.View.Geometry.X
			y := currentY
			placements = append(placements, Placement{
				View: t.View, X: x, Y: y, Width: t.View.Geometry.W, Height: height,
			})
			currentY += height + gap
		}
		accWidth += maxWidth + gap
	}

	return placements
}

// Apply snaps every placed view directly to its computed position,
// without animating. Used for arrangement that must be immediate (e.g.
// resize grabs) or in tests.
func (w *Workspace) Apply(placements []Placement) {
	for _, p := range placements {
		p.View.Geometry.W = p.Width
		p.View.Geometry.H = p.Height
		p.View.SetPosition(p.X, p.Y)
	}
}

// ViewWX returns v's x-coordinate in workspace-plane coordinates: the sum
// of widths of preceding columns plus a gap, independent of ScrollX.
func (w *Workspace) ViewWX(v *view.View, gap int32) (int32, error) {
	c, _ := w.columnOf(v)
	if c == nil {
		if i := w.indexOfFloating(v); i >= 0 {
			return v.X, nil
		}
		return 0, ErrNotMember
	}
	var wx int32
	for _, cc := range w.Columns {
		if cc == c {
			break
		}
		if cc.hasEligible() {
			wx += cc.MaxWidth() + gap
		}
	}
	return wx, nil
}

// FitViewOnScreen adjusts ScrollX so v is visible, per the branch order
// in Workspace.cpp: condense-to-first, condense-to-last, overflow-left,
// overflow-right, else unchanged. Never scrolls while a fullscreen view
// is active or v is mid-recovery.
func (w *Workspace) FitViewOnScreen(v *view.View, usableArea geom.Rect, gap int32, condense bool) error {
	if w.FullscreenView != nil || v.State == view.StateRecovering {
		return nil
	}
	if v.Floating {
		return nil
	}
	col, _ := w.columnOf(v)
	if col == nil {
		return ErrNotMember
	}
	wx, err := w.ViewWX(v, gap)
	if err != nil {
		return err
	}
	halfGap := gap / 2
	firstCol := len(w.Columns) > 0 && w.Columns[0] == col
	lastCol := len(w.Columns) > 0 && w.Columns[len(w.Columns)-1] == col

	switch {
	case condense && firstCol:
		w.ScrollX = -usableArea.X
	case condense && lastCol:
		w.ScrollX = wx + col.MaxWidth() - usableArea.Right()
	case wx-w.ScrollX < usableArea.X+halfGap:
		w.ScrollX = wx - usableArea.X - halfGap
	case wx+col.MaxWidth()-w.ScrollX > usableArea.Right()-halfGap:
		w.ScrollX = wx + col.MaxWidth() - usableArea.Right() + halfGap
	}
	return nil
}

// SetFullscreenView sets or clears the fullscreen view. Clearing marks the
// previous fullscreen view RECOVERING and restores its saved geometry;
// setting saves the current geometry and marks the view FULLSCREEN.
func (w *Workspace) SetFullscreenView(v *view.View) {
	if v == nil {
		if w.FullscreenView == nil {
			return
		}
		prev := w.FullscreenView
		w.FullscreenView = nil
		if prev.HasSaved {
			prev.State = view.StateRecovering
			prev.Geometry.W = prev.SavedState.W
			prev.Geometry.H = prev.SavedState.H
			prev.SetPosition(prev.SavedState.X, prev.SavedState.Y)
			prev.HasSaved = false
		} else {
			prev.State = view.StateNormal
		}
		return
	}
	v.SavedState = geom.Rect{X: v.X, Y: v.Y, W: v.Geometry.W, H: v.Geometry.H}
	v.HasSaved = true
	v.State = view.StateFullscreen
	w.FullscreenView = v
}

// FinishRecovery should be called once the backend confirms a commit
// matching the recovered geometry; it clears the RECOVERING state.
func FinishRecovery(v *view.View) {
	if v.State == view.StateRecovering {
		v.State = view.StateNormal
	}
}

// FindDominantView picks the column most visible within usableArea and,
// within it, the tile most recently focused according to focusOrder
// (front = most recent). It sticks with the currently focused view unless
// some other column beats it by more than DominantVisibilityHysteresis.
func (w *Workspace) FindDominantView(focused *view.View, focusOrder []*view.View, usableArea geom.Rect, gap int32) *view.View {
	if len(w.Columns) == 0 {
		return focused
	}

	focusedVisibility := -1.0
	bestCol := (*Column)(nil)
	bestVisibility := -1.0

	for _, col := range w.Columns {
		if !col.hasEligible() {
			continue
		}
		var first *view.View
		for _, t := range col.Tiles {
			if eligible(t.View) {
				first = t.View
				break
			}
		}
		if first == nil {
			continue
		}
		wx, _ := w.ViewWX(first, gap)
		box := geom.Rect{X: wx - w.ScrollX, Y: usableArea.Y, W: col.MaxWidth(), H: usableArea.H}
		var visibility float64
		if inter, ok := geom.Intersection(box, usableArea); ok {
			visibility = float64(inter.Area())
		}
		if visibility > bestVisibility {
			bestVisibility = visibility
			bestCol = col
		}
		if focused != nil {
			if c, _ := w.columnOf(focused); c == col {
				focusedVisibility = visibility
			}
		}
	}

	if bestCol == nil {
		return focused
	}
	if focused != nil && focusedVisibility >= 0 &&
		bestVisibility-focusedVisibility <= DominantVisibilityHysteresis*float64(usableArea.Area()) {
		return focused
	}

	for _, cand := range focusOrder {
		if c, _ := w.columnOf(cand); c == bestCol && eligible(cand) {
			return cand
		}
	}
	for _, t := range bestCol.Tiles {
		if eligible(t.View) {
			return t.View
		}
	}
	return focused
}
