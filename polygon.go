package bento

import "math"

// Polygon is a closed shape defined by its points in order.
// Intersect assumes both polygons are convex; HasPosition works for any
// simple polygon.
type Polygon struct {
	Points []Vector2
}

// NewPolygon returns a polygon over a copy of points.
func NewPolygon(points ...Vector2) Polygon {
	return Polygon{Points: append([]Vector2(nil), points...)}
}

// Clone returns a deep copy of p.
func (p Polygon) Clone() Polygon {
	return NewPolygon(p.Points...)
}

// Offset returns p moved by o.
func (p Polygon) Offset(o Vector2) Polygon {
	out := Polygon{Points: make([]Vector2, len(p.Points))}
	for i, pt := range p.Points {
		out.Points[i] = pt.Add(o)
	}
	return out
}

// GetBoundingBox returns the axis-aligned bounds of p.
func (p Polygon) GetBoundingBox() Rectangle {
	if len(p.Points) == 0 {
		return Rectangle{}
	}
	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Points[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rectangle{minX, minY, maxX - minX, maxY - minY}
}

// HasPosition reports whether pos lies inside p using the even-odd rule.
func (p Polygon) HasPosition(pos Vector2) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if (a.Y > pos.Y) != (b.Y > pos.Y) &&
			pos.X < (b.X-a.X)*(pos.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Intersect reports whether the convex polygons p and o overlap, using the
// separating axis test. Touching edges do not count as overlap.
func (p Polygon) Intersect(o Polygon) bool {
	if len(p.Points) < 3 || len(o.Points) < 3 {
		return false
	}
	return !hasSeparatingAxis(p.Points, o.Points) && !hasSeparatingAxis(o.Points, p.Points)
}

// IntersectRectangle reports whether p overlaps r.
func (p Polygon) IntersectRectangle(r Rectangle) bool {
	return p.Intersect(r.ToPolygon())
}

// hasSeparatingAxis checks the edge normals of a against both point sets.
func hasSeparatingAxis(a, b []Vector2) bool {
	n := len(a)
	for i := 0; i < n; i++ {
		edge := a[(i+1)%n].Subtract(a[i])
		axis := edge.Perpendicular()
		if axis.X == 0 && axis.Y == 0 {
			continue
		}
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)
		if maxA <= minB || maxB <= minA {
			return true
		}
	}
	return false
}

func project(points []Vector2, axis Vector2) (lo, hi float64) {
	lo = points[0].Dot(axis)
	hi = lo
	for _, pt := range points[1:] {
		d := pt.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}
