package ldrb

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"cardiofiber/pkg/geometry"
)

// bislerpCoincidentTol is the threshold on the quaternion dot product above
// which two rotations are treated as coincident and interpolation is
// skipped: slerp weights become numerically unstable as the arc length
// approaches zero.
const bislerpCoincidentTol = 1e-12

// bislerp spherically interpolates between two rotation frames at parameter
// t in [0,1].
//
// A rotation matrix maps to two antipodal quaternions, and the frames here
// are further equivalent under 90-degree flips about each axis, so qa has 8
// quaternion representatives: +-qa and +-qa*i, +-qa*j, +-qa*k. The
// representative closest to qb (largest absolute dot product) is selected
// before interpolating, so the slerp always runs along the shortest
// equivalent arc.
//
// Absent frames are handled explicitly: if both inputs are nil the result is
// nil, and if exactly one is nil the other is returned unchanged.
func bislerp(qa, qb *geometry.Frame, t float64) *geometry.Frame {
	if qa == nil && qb == nil {
		return nil
	}
	if qa == nil {
		return qb
	}
	if qb == nil {
		return qa
	}

	pa := qa.ToQuat()
	pb := qb.ToQuat()

	pai := quat.Mul(pa, quat.Number{Imag: 1})
	paj := quat.Mul(pa, quat.Number{Jmag: 1})
	pak := quat.Mul(pa, quat.Number{Kmag: 1})

	candidates := [8]quat.Number{
		pa, quat.Scale(-1, pa),
		pai, quat.Scale(-1, pai),
		paj, quat.Scale(-1, paj),
		pak, quat.Scale(-1, pak),
	}

	best := candidates[0]
	bestDot := -1.0
	for _, c := range candidates {
		if d := math.Abs(geometry.QuatDot(c, pb)); d > bestDot {
			bestDot = d
			best = c
		}
	}

	if bestDot > 1-bislerpCoincidentTol {
		return qb
	}
	return geometry.FrameFromQuat(geometry.Slerp(best, pb, t))
}
