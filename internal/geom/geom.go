// Package geom holds the small rectangle/point primitives shared by the
// output, workspace, layer and surface packages.
package geom

// Point is a position in some coordinate space (global, output-local, or
// workspace-plane, depending on context).
type Point struct {
	X, Y int32
}

// Size is a width/height pair.
type Size struct {
	W, H int32
}

// Rect is an axis-aligned rectangle. Width/Height are never negative in a
// well-formed Rect; callers that might produce a negative dimension (layer
// margin math) must check before constructing one.
type Rect struct {
	X, Y int32
	W, H int32
}

// Right returns the rectangle's right edge (X+W).
func (r Rect) Right() int32 { return r.X + r.W }

// Bottom returns the rectangle's bottom edge (Y+H).
func (r Rect) Bottom() int32 { return r.Y + r.H }

// Contains reports whether the point (x,y) lies within the rectangle,
// treating the rectangle as half-open: [X,Right) x [Y,Bottom).
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Translate returns r shifted by (dx,dy).
func (r Rect) Translate(dx, dy int32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Intersection returns the overlapping rectangle of a and b, and whether
// they overlap at all (an empty or negative overlap reports ok=false).
func Intersection(a, b Rect) (Rect, bool) {
	x0 := max32(a.X, b.X)
	y0 := max32(a.Y, b.Y)
	x1 := min32(a.Right(), b.Right())
	y1 := min32(a.Bottom(), b.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// Area returns w*h as an int64 to avoid overflow on multiplication.
func (r Rect) Area() int64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return int64(r.W) * int64(r.H)
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
