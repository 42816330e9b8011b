package bento

import "math"

// Matrix is a 2D affine matrix.
//
//	| A  C  Tx |
//	| B  D  Ty |
//	| 0  0   1 |
//
// Points are column vectors: Apply(p) = (A*x + C*y + Tx, B*x + D*y + Ty).
//
// Like Vector2, value-receiver methods return a new matrix and
// pointer-receiver methods modify the receiver.
type Matrix struct {
	A, B, C, D, Tx, Ty float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// TranslationMatrix returns a matrix translating by (x, y).
func TranslationMatrix(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, Tx: x, Ty: y}
}

// ScaleMatrix returns a matrix scaling by (sx, sy).
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// RotationMatrix returns a matrix rotating by angle radians (clockwise on a
// Y-down screen).
func RotationMatrix(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return rotationMatrix(sin, cos)
}

func rotationMatrix(sin, cos float64) Matrix {
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Multiply returns m * o, the transform that applies o first and m second.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A:  m.A*o.A + m.C*o.B,
		B:  m.B*o.A + m.D*o.B,
		C:  m.A*o.C + m.C*o.D,
		D:  m.B*o.C + m.D*o.D,
		Tx: m.A*o.Tx + m.C*o.Ty + m.Tx,
		Ty: m.B*o.Tx + m.D*o.Ty + m.Ty,
	}
}

// Apply transforms the point p by m.
func (m Matrix) Apply(p Vector2) Vector2 {
	return Vector2{
		X: m.A*p.X + m.C*p.Y + m.Tx,
		Y: m.B*p.X + m.D*p.Y + m.Ty,
	}
}

// Determinant returns the determinant of the linear part of m.
func (m Matrix) Determinant() float64 {
	return m.A*m.D - m.C*m.B
}

// Invert returns the inverse of m. Returns the identity matrix if m is
// singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if det > -1e-12 && det < 1e-12 {
		return Identity()
	}
	invDet := 1.0 / det
	a := m.D * invDet
	b := -m.B * invDet
	c := -m.C * invDet
	d := m.A * invDet
	return Matrix{
		A: a, B: b, C: c, D: d,
		Tx: -(a*m.Tx + c*m.Ty),
		Ty: -(b*m.Tx + d*m.Ty),
	}
}

// Elements returns the matrix as [a, b, c, d, tx, ty].
func (m Matrix) Elements() [6]float64 {
	return [6]float64{m.A, m.B, m.C, m.D, m.Tx, m.Ty}
}

// --- Mutating ---

// MultiplyWith sets m to m * o.
func (m *Matrix) MultiplyWith(o Matrix) *Matrix {
	*m = m.Multiply(o)
	return m
}

// Translate post-multiplies a translation, the way a canvas context does:
// subsequent points are translated before the existing transform applies.
func (m *Matrix) Translate(x, y float64) *Matrix {
	m.Tx += m.A*x + m.C*y
	m.Ty += m.B*x + m.D*y
	return m
}

// Scale post-multiplies a scale.
func (m *Matrix) Scale(sx, sy float64) *Matrix {
	m.A *= sx
	m.B *= sx
	m.C *= sy
	m.D *= sy
	return m
}

// Rotate post-multiplies a rotation of angle radians.
func (m *Matrix) Rotate(angle float64) *Matrix {
	sin, cos := math.Sincos(angle)
	return m.MultiplyWith(rotationMatrix(sin, cos))
}

// Reset sets m back to the identity.
func (m *Matrix) Reset() *Matrix {
	*m = Identity()
	return m
}
