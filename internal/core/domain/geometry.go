package domain

// Point is a position in pixels. Whether it is viewport-relative or
// page-local depends on context; conversions happen at the tool boundary.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p translated by -o. Used to convert viewport coordinates to
// page-local coordinates given the page origin.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoundingBox returns the axis-aligned bounding box of two points.
func BoundingBox(a, b Point) Rect {
	x, y := a.X, a.Y
	if b.X < x {
		x = b.X
	}
	if b.Y < y {
		y = b.Y
	}
	w, h := a.X-b.X, a.Y-b.Y
	if w < 0 {
		w = -w
	}
	if h < 0 {
		h = -h
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Contains reports whether p lies within the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Origin returns the rectangle's top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// ClampTo clamps the rectangle to a surface of the given size so that
// 0 <= x' <= x'+width' <= width (and symmetrically for the vertical axis).
// An out-of-bounds rectangle never produces out-of-bounds extraction
// coordinates; a fully outside rectangle degrades to zero size.
func (r Rect) ClampTo(width, height float64) Rect {
	x := clamp(r.X, 0, width-1)
	y := clamp(r.Y, 0, height-1)
	w := r.Width
	if w > width-x {
		w = width - x
	}
	h := r.Height
	if h > height-y {
		h = height - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// ClampPointTo clamps a rectangle of size (w, h) anchored at p so its full
// extent stays inside the bounds rectangle. Used to keep the floating
// comment editor inside the viewport.
func ClampPointTo(p Point, w, h float64, bounds Rect) Point {
	x := clamp(p.X, bounds.X, bounds.X+bounds.Width-w)
	y := clamp(p.Y, bounds.Y, bounds.Y+bounds.Height-h)
	return Point{X: x, Y: y}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
