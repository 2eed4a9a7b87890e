package geometry

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// ToQuat converts the frame to a unit quaternion using Shepperd's method:
// the conversion branches on the largest of the trace and the diagonal
// entries so the divisor is always well away from zero.
func (f *Frame) ToQuat() quat.Number {
	r00, r01, r02 := f.At(0, 0), f.At(0, 1), f.At(0, 2)
	r10, r11, r12 := f.At(1, 0), f.At(1, 1), f.At(1, 2)
	r20, r21, r22 := f.At(2, 0), f.At(2, 1), f.At(2, 2)

	var q quat.Number
	switch tr := r00 + r11 + r22; {
	case tr > 0:
		s := 2 * math.Sqrt(tr+1)
		q = quat.Number{
			Real: s / 4,
			Imag: (r21 - r12) / s,
			Jmag: (r02 - r20) / s,
			Kmag: (r10 - r01) / s,
		}
	case r00 >= r11 && r00 >= r22:
		s := 2 * math.Sqrt(1+r00-r11-r22)
		q = quat.Number{
			Real: (r21 - r12) / s,
			Imag: s / 4,
			Jmag: (r01 + r10) / s,
			Kmag: (r02 + r20) / s,
		}
	case r11 >= r22:
		s := 2 * math.Sqrt(1+r11-r00-r22)
		q = quat.Number{
			Real: (r02 - r20) / s,
			Imag: (r01 + r10) / s,
			Jmag: s / 4,
			Kmag: (r12 + r21) / s,
		}
	default:
		s := 2 * math.Sqrt(1+r22-r00-r11)
		q = quat.Number{
			Real: (r10 - r01) / s,
			Imag: (r02 + r20) / s,
			Jmag: (r12 + r21) / s,
			Kmag: s / 4,
		}
	}
	return quat.Scale(1/quat.Abs(q), q)
}

// FrameFromQuat converts a unit quaternion back to a rotation frame.
func FrameFromQuat(q quat.Number) *Frame {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return NewFrame(
		Vec3{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy)},
		Vec3{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx)},
		Vec3{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy)},
	)
}

// QuatDot returns the 4D scalar product of two quaternions.
func QuatDot(p, q quat.Number) float64 {
	return p.Real*q.Real + p.Imag*q.Imag + p.Jmag*q.Jmag + p.Kmag*q.Kmag
}

// Slerp spherically interpolates between two unit quaternions at parameter
// t in [0,1], following the shorter great-circle arc. For nearly coincident
// inputs it degrades to normalized linear interpolation, where the spherical
// weights lose precision.
func Slerp(qa, qb quat.Number, t float64) quat.Number {
	d := QuatDot(qa, qb)
	if d < 0 {
		qb = quat.Scale(-1, qb)
		d = -d
	}

	var out quat.Number
	if d > 1-1e-9 {
		out = quat.Add(quat.Scale(1-t, qa), quat.Scale(t, qb))
	} else {
		theta := math.Acos(math.Min(d, 1))
		sin := math.Sin(theta)
		out = quat.Add(
			quat.Scale(math.Sin((1-t)*theta)/sin, qa),
			quat.Scale(math.Sin(t*theta)/sin, qb),
		)
	}
	return quat.Scale(1/quat.Abs(out), out)
}
