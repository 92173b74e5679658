package atres

// Color represents an RGBA color with components in [0, 1]. Not
// premultiplied; premultiplication, if the rasterizer backend needs it,
// happens at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default text tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// withAlpha returns a copy of c with A replaced.
func (c Color) withAlpha(a float64) Color {
	c.A = a
	return c
}

// canonicalAlpha returns c with alpha forced to 1.0 (255/255), used when
// building a cache fingerprint so alpha-only animation does not thrash the
// cache (§3 CacheEntry*).
func (c Color) canonicalAlpha() Color {
	return c.withAlpha(1)
}

// hex returns the 8-digit AARRGGBB hex representation, optionally ignoring
// (forcing to FF) the alpha channel.
func (c Color) hex(ignoreAlpha bool) string {
	a := c.A
	if ignoreAlpha {
		a = 1
	}
	return hexEncode(a, c.R, c.G, c.B)
}

// Vec2 is a 2D vector used for offsets and sizes throughout the package.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin
// at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Adjacent rectangles
// (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// translated returns r shifted by (dx, dy).
func (r Rect) translated(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// clip intersects r with bounds, returning the overlapping rectangle and
// false if there is no overlap. Used by the sequence builder to cull
// strike-through/underline lining rectangles against the target rect.
func (r Rect) clip(bounds Rect) (Rect, bool) {
	x0 := max(r.X, bounds.X)
	y0 := max(r.Y, bounds.Y)
	x1 := min(r.X+r.Width, bounds.X+bounds.Width)
	y1 := min(r.Y+r.Height, bounds.Y+bounds.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}
