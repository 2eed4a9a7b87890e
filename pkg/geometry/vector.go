// Package geometry provides the small set of 3D primitives used by the
// fiber generation core: direction vectors, orthonormal rotation frames,
// and conversion between frames and unit quaternions.
package geometry

import (
	"errors"
	"math"
)

// ErrZeroVector is returned when a direction of zero (or numerically
// negligible) length would have to be normalized.
var ErrZeroVector = errors.New("geometry: cannot normalize zero-length vector")

// Vec3 is a 3-component direction vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns s*v.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v.X, s * v.Y, s * v.Z}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the scalar product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the vector product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. It returns ErrZeroVector when
// the length of v is below the given tolerance, so that degenerate gradients
// surface as an explicit condition instead of NaNs.
func (v Vec3) Normalize(tol float64) (Vec3, error) {
	n := v.Norm()
	if n < tol {
		return Vec3{}, ErrZeroVector
	}
	return v.Scale(1 / n), nil
}

// IsZero reports whether every component of v is exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
