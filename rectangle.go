package bento

import "math"

// Corner names one of a rectangle's anchor points.
type Corner uint8

const (
	CornerTopLeft     Corner = iota // (x, y)
	CornerTopRight                  // (x + width, y)
	CornerBottomLeft                // (x, y + height)
	CornerBottomRight               // (x + width, y + height)
)

// Rectangle is an axis-aligned rectangle. X, Y is the top-left corner, with Y
// increasing downward. Width and Height are non-negative in well-formed use.
type Rectangle struct {
	X, Y, Width, Height float64
}

// NewRectangle returns the rectangle (x, y, width, height).
func NewRectangle(x, y, width, height float64) Rectangle {
	return Rectangle{X: x, Y: y, Width: width, Height: height}
}

// Clone returns a copy of r.
func (r Rectangle) Clone() Rectangle {
	return r
}

// Right returns the x coordinate of the right edge.
func (r Rectangle) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rectangle) Bottom() float64 {
	return r.Y + r.Height
}

// Offset returns r moved by p.
func (r Rectangle) Offset(p Vector2) Rectangle {
	return Rectangle{r.X + p.X, r.Y + p.Y, r.Width, r.Height}
}

// Grow returns r expanded by size on every side. Negative sizes shrink it.
func (r Rectangle) Grow(size float64) Rectangle {
	return Rectangle{r.X - size, r.Y - size, r.Width + 2*size, r.Height + 2*size}
}

// Intersect reports whether r and o overlap. Rectangles that only share an
// edge do not intersect.
func (r Rectangle) Intersect(o Rectangle) bool {
	return r.X < o.X+o.Width &&
		r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height &&
		r.Y+r.Height > o.Y
}

// Intersection returns the overlapping area of r and o. The result has zero
// size when they do not intersect.
func (r Rectangle) Intersection(o Rectangle) Rectangle {
	x := math.Max(r.X, o.X)
	y := math.Max(r.Y, o.Y)
	right := math.Min(r.Right(), o.Right())
	bottom := math.Min(r.Bottom(), o.Bottom())
	if right <= x || bottom <= y {
		return Rectangle{X: x, Y: y}
	}
	return Rectangle{x, y, right - x, bottom - y}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rectangle{x, y, right - x, bottom - y}
}

// HasPosition reports whether p lies inside r. The top and left edges are
// inside, the bottom and right edges are not.
func (r Rectangle) HasPosition(p Vector2) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rectangle) ContainsRect(o Rectangle) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// GetCorner returns the position of the given corner.
func (r Rectangle) GetCorner(c Corner) Vector2 {
	switch c {
	case CornerTopRight:
		return Vector2{r.X + r.Width, r.Y}
	case CornerBottomLeft:
		return Vector2{r.X, r.Y + r.Height}
	case CornerBottomRight:
		return Vector2{r.X + r.Width, r.Y + r.Height}
	default:
		return Vector2{r.X, r.Y}
	}
}

// GetCenter returns the center point of r.
func (r Rectangle) GetCenter() Vector2 {
	return Vector2{r.X + r.Width/2, r.Y + r.Height/2}
}

// ToPolygon returns the four corners of r as a clockwise polygon.
func (r Rectangle) ToPolygon() Polygon {
	return Polygon{Points: []Vector2{
		r.GetCorner(CornerTopLeft),
		r.GetCorner(CornerTopRight),
		r.GetCorner(CornerBottomRight),
		r.GetCorner(CornerBottomLeft),
	}}
}
