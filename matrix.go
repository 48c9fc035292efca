// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterly

import "math"

// epsilon is the float32 machine epsilon, used as the invertibility cutoff.
const epsilon = 1.1920929e-07

// Affine represents a 2D affine transform matrix:
//
//	| A B 0 |
//	| C D 0 |
//	| X Y 1 |
//
// Points are transformed using the row-vector convention, p' = p · M:
//
//	x' = x*A + y*C + X
//	y' = x*B + y*D + Y
type Affine struct {
	// A is horizontal scaling / cosine of rotation.
	A float32
	// B is vertical shear / sine of rotation.
	B float32
	// C is horizontal shear / negative sine of rotation.
	C float32
	// D is vertical scaling / cosine of rotation.
	D float32
	// X is the horizontal translation.
	X float32
	// Y is the vertical translation.
	Y float32
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translation returns a transform that translates by (x, y).
func Translation(x, y float32) Affine {
	return Affine{A: 1, D: 1, X: x, Y: y}
}

// Scaling returns a transform that scales by (sx, sy).
func Scaling(sx, sy float32) Affine {
	return Affine{A: sx, D: sy}
}

// Rotation returns a transform that rotates by angle radians.
func Rotation(angle float32) Affine {
	sin, cos := math.Sincos(float64(angle))
	return Affine{
		A: float32(cos),
		B: float32(sin),
		C: float32(-sin),
		D: float32(cos),
	}
}

// Skewing returns a transform that skews by ax radians horizontally and
// ay radians vertically.
func Skewing(ax, ay float32) Affine {
	return Affine{
		A: 1,
		B: float32(math.Tan(float64(ay))),
		C: float32(math.Tan(float64(ax))),
		D: 1,
	}
}

// IsIdentity reports whether the transform is the identity.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}

// Multiply returns m · n. Under the row-vector convention this applies m
// first, then n.
func (m Affine) Multiply(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
		X: m.X*n.A + m.Y*n.C + n.X,
		Y: m.X*n.B + m.Y*n.D + n.Y,
	}
}

// TransformPoint applies the transform to a point.
func (m Affine) TransformPoint(p Point) Point {
	return Point{
		X: p.X*m.A + p.Y*m.C + m.X,
		Y: p.X*m.B + p.Y*m.D + m.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (m Affine) Determinant() float32 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse transform. The second result is false when the
// matrix is not invertible (|det| below machine epsilon); callers get no
// NaN/Inf-poisoned matrix back in that case.
func (m Affine) Invert() (Affine, bool) {
	det := m.Determinant()
	if abs32(det) < epsilon {
		return Affine{}, false
	}

	return Affine{
		A: m.D / det,
		B: m.B / -det,
		C: m.C / -det,
		D: m.A / det,
		X: (m.D*m.X - m.C*m.Y) / -det,
		Y: (m.B*m.X - m.A*m.Y) / det,
	}, true
}

// ZeroTranslation returns a copy of the transform with translation removed.
func (m Affine) ZeroTranslation() Affine {
	m.X = 0
	m.Y = 0
	return m
}

// Decomposed holds the independent components of an affine transform.
type Decomposed struct {
	// ScaleX and ScaleY are the axis scale factors.
	ScaleX, ScaleY float32
	// Rotation is the recovered rotation in radians.
	Rotation float32
	// TranslateX and TranslateY are the translation components.
	TranslateX, TranslateY float32
}

// Decompose splits the transform into scale, rotation and translation.
// The rotation is recovered via atan2 over the B and D entries; it is only
// exact for matrices without independent shear, and best-effort otherwise.
func (m Affine) Decompose() Decomposed {
	return Decomposed{
		ScaleX:     float32(math.Hypot(float64(m.A), float64(m.C))),
		ScaleY:     float32(math.Hypot(float64(m.B), float64(m.D))),
		Rotation:   float32(math.Atan2(float64(m.B), float64(m.D))),
		TranslateX: m.X,
		TranslateY: m.Y,
	}
}

// IsRotated reports whether the decomposition carries a rotation.
func (d Decomposed) IsRotated() bool {
	return d.Rotation != 0
}

// IsScaled reports whether the decomposition carries a non-unit scale.
func (d Decomposed) IsScaled() bool {
	return d.ScaleX != 1 || d.ScaleY != 1
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
