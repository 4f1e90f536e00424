// Package layer implements the layer-shell geometry engine: exclusive
// zones that reshape an output's usable area, and the non-exclusive box
// computation for every layer-shell surface.
package layer

import (
	"github.com/cardboardwm/cardboard/internal/backend"
	"github.com/cardboardwm/cardboard/internal/geom"
	"github.com/cardboardwm/cardboard/internal/surfacemgr"
)

var topToBottom = []backend.Layer{
	backend.LayerOverlay, backend.LayerTop, backend.LayerBottom, backend.LayerBackground,
}

// Result is the outcome of arranging one output's layer surfaces.
type Result struct {
	UsableArea geom.Rect
	Changed    bool
	// Closed lists surfaces whose computed box went negative in either
	// dimension and must be closed by the caller.
	Closed []*surfacemgr.LayerSurface
}

// Arrange runs the two-pass layer-shell layout for a single output:
// pass 1 shrinks usableArea by every surface's exclusive zone (processed
// OVERLAY -> TOP -> BOTTOM -> BACKGROUND); pass 2 computes every mapped
// surface's box within the resulting area (or the full output if its
// exclusive zone is -1) and writes it back into the surface's Geometry.
// prevUsable is the output's usable area before this pass; Result.Changed
// reports whether the new usable area differs from it, so the caller can
// decide between a plain rearrange and a fit_view_on_screen of the
// focused view.
func Arrange(resolution geom.Size, outputPos geom.Point, surfaces *surfacemgr.Manager, output backend.OutputHandle, prevUsable geom.Rect) Result {
	usable := geom.Rect{X: 0, Y: 0, W: resolution.W, H: resolution.H}

	for _, layer := range topToBottom {
		for _, ls := range surfaces.LayersOn(output, layer) {
			if !ls.Mapped || ls.ExclusiveZone <= 0 {
				continue
			}
			shrinkByExclusiveZone(&usable, ls)
		}
	}

	var closed []*surfacemgr.LayerSurface
	for _, layer := range topToBottom {
		for _, ls := range surfaces.LayersOn(output, layer) {
			if !ls.Mapped {
				continue
			}
			area := usable
			if ls.ExclusiveZone == -1 {
				area = geom.Rect{X: 0, Y: 0, W: resolution.W, H: resolution.H}
			}
			box, ok := computeBox(area, ls)
			if !ok {
				closed = append(closed, ls)
				continue
			}
			ls.Geometry = box.Translate(outputPos.X, outputPos.Y)
		}
	}

	return Result{UsableArea: usable, Changed: usable != prevUsable, Closed: closed}
}

// shrinkByExclusiveZone reduces usable in place by ls's exclusive zone,
// if ls is anchored to the three edges required to claim one of the four
// sides (it must span the perpendicular axis: anchored to both left and
// right to claim top/bottom, or both top and bottom to claim left/right).
func shrinkByExclusiveZone(usable *geom.Rect, ls *surfacemgr.LayerSurface) {
	a := ls.Anchor
	zone := ls.ExclusiveZone

	spansHorizontally := a&backend.AnchorLeft != 0 && a&backend.AnchorRight != 0
	spansVertically := a&backend.AnchorTop != 0 && a&backend.AnchorBottom != 0

	switch {
	case spansHorizontally && a&backend.AnchorTop != 0:
		d := zone + ls.MarginTop
		usable.Y += d
		usable.H -= d
	case spansHorizontally && a&backend.AnchorBottom != 0:
		usable.H -= zone + ls.MarginBottom
	case spansVertically && a&backend.AnchorLeft != 0:
		d := zone + ls.MarginLeft
		usable.X += d
		usable.W -= d
	case spansVertically && a&backend.AnchorRight != 0:
		usable.W -= zone + ls.MarginRight
	}
}

// computeBox lays ls out within area per the non-exclusive rules: stretch
// if anchored to both opposite edges with zero desired size in that
// axis, else left/right/top/bottom aligned, else centered; margins are
// additive on anchored edges. Returns ok=false if either resulting
// dimension is negative (caller must close the surface).
func computeBox(area geom.Rect, ls *surfacemgr.LayerSurface) (geom.Rect, bool) {
	a := ls.Anchor
	var x, w int32

	switch {
	case a&backend.AnchorLeft != 0 && a&backend.AnchorRight != 0 && ls.DesiredW == 0:
		x = area.X + ls.MarginLeft
		w = area.W - ls.MarginLeft - ls.MarginRight
	case a&backend.AnchorLeft != 0:
		x = area.X + ls.MarginLeft
		w = ls.DesiredW
	case a&backend.AnchorRight != 0:
		w = ls.DesiredW
		x = area.Right() - ls.MarginRight - w
	default:
		w = ls.DesiredW
		x = area.X + (area.W-w)/2
	}

	var y, h int32
	switch {
	case a&backend.AnchorTop != 0 && a&backend.AnchorBottom != 0 && ls.DesiredH == 0:
		y = area.Y + ls.MarginTop
		h = area.H - ls.MarginTop - ls.MarginBottom
	case a&backend.AnchorTop != 0:
		y = area.Y + ls.MarginTop
		h = ls.DesiredH
	case a&backend.AnchorBottom != 0:
		h = ls.DesiredH
		y = area.Bottom() - ls.MarginBottom - h
	default:
		h = ls.DesiredH
		y = area.Y + (area.H-h)/2
	}

	if w < 0 || h < 0 {
		return geom.Rect{}, false
	}
	return geom.Rect{X: x, Y: y, W: w, H: h}, true
}

// TopmostKeyboardInteractive returns the topmost mapped OVERLAY or TOP
// layer surface that requested keyboard interactivity, or nil.
func TopmostKeyboardInteractive(surfaces *surfacemgr.Manager, output backend.OutputHandle) *surfacemgr.LayerSurface {
	for _, l := range []backend.Layer{backend.LayerOverlay, backend.LayerTop} {
		list := surfaces.LayersOn(output, l)
		for i := len(list) - 1; i >= 0; i-- {
			ls := list[i]
			if ls.Mapped && ls.KeyboardInteractive {
				return ls
			}
		}
	}
	return nil
}
