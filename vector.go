package bento

import "math"

// Vector2 is a 2D vector used for positions, scales, offsets and directions.
//
// Methods with a value receiver never modify the receiver and return a new
// vector. Methods with a pointer receiver modify the receiver in place and
// return it so calls can be chained.
type Vector2 struct {
	X, Y float64
}

// NewVector2 returns the vector (x, y).
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// --- Non-mutating ---

// Clone returns a copy of v.
func (v Vector2) Clone() Vector2 {
	return v
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Subtract returns v - o.
func (v Vector2) Subtract(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// ScalarMultiply returns v * s.
func (v Vector2) ScalarMultiply(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Multiply returns the component-wise product of v and o.
func (v Vector2) Multiply(o Vector2) Vector2 {
	return Vector2{v.X * o.X, v.Y * o.Y}
}

// Divide returns the component-wise quotient of v and o.
func (v Vector2) Divide(o Vector2) Vector2 {
	return Vector2{v.X / o.X, v.Y / o.Y}
}

// Normalize returns a unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vector2) Normalize() Vector2 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return Vector2{v.X / m, v.Y / m}
}

// Rotate returns v rotated by angle radians around the origin.
func (v Vector2) Rotate(angle float64) Vector2 {
	sin, cos := math.Sincos(angle)
	return Vector2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Lerp returns the linear interpolation between v and o at t.
func (v Vector2) Lerp(o Vector2, t float64) Vector2 {
	return Vector2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Perpendicular returns v rotated by 90 degrees counterclockwise.
func (v Vector2) Perpendicular() Vector2 {
	return Vector2{-v.Y, v.X}
}

// Abs returns v with both components made non-negative.
func (v Vector2) Abs() Vector2 {
	return Vector2{math.Abs(v.X), math.Abs(v.Y)}
}

// --- Queries ---

// Magnitude returns the length of v.
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// SqrMagnitude returns the squared length of v.
func (v Vector2) SqrMagnitude() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Angle returns the angle of v in radians, measured from the positive X axis.
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleBetween returns the angle in radians from v to o.
func (v Vector2) AngleBetween(o Vector2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// Distance returns the distance between v and o.
func (v Vector2) Distance(o Vector2) float64 {
	return v.Subtract(o).Magnitude()
}

// Equals reports whether v and o are identical.
func (v Vector2) Equals(o Vector2) bool {
	return v.X == o.X && v.Y == o.Y
}

// --- Mutating ---

// AddTo adds o to v in place.
func (v *Vector2) AddTo(o Vector2) *Vector2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// SubtractFrom subtracts o from v in place.
func (v *Vector2) SubtractFrom(o Vector2) *Vector2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// ScalarMultiplyWith scales v by s in place.
func (v *Vector2) ScalarMultiplyWith(s float64) *Vector2 {
	v.X *= s
	v.Y *= s
	return v
}

// MultiplyWith multiplies v component-wise by o in place.
func (v *Vector2) MultiplyWith(o Vector2) *Vector2 {
	v.X *= o.X
	v.Y *= o.Y
	return v
}

// DivideBy divides v component-wise by o in place.
func (v *Vector2) DivideBy(o Vector2) *Vector2 {
	v.X /= o.X
	v.Y /= o.Y
	return v
}

// NormalizeSelf turns v into a unit vector in place.
func (v *Vector2) NormalizeSelf() *Vector2 {
	*v = v.Normalize()
	return v
}

// RotateSelf rotates v by angle radians in place.
func (v *Vector2) RotateSelf(angle float64) *Vector2 {
	*v = v.Rotate(angle)
	return v
}

// Set assigns both components and returns v.
func (v *Vector2) Set(x, y float64) *Vector2 {
	v.X = x
	v.Y = y
	return v
}
