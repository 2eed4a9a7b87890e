package ldrb

import (
	"errors"

	"cardiofiber/internal/fixpoint"
	"cardiofiber/pkg/geometry"
)

// ErrDegenerateAxis is returned when the axis directions cannot span a
// plane: either vector is (numerically) zero or the two are parallel.
var ErrDegenerateAxis = errors.New("ldrb: degenerate axis directions")

// axisFrame constructs the local coordinate system from the apicobasal
// direction u and the transmural direction v. The returned frame has
// columns e0 (circumferential), e1 = normalize(u) (apicobasal) and e2
// (transmural).
//
// e2 depends on e0 while e0 is defined from e2, so after a Gram-Schmidt
// seed the pair is refined through the fixed-point equation
//
//	e0 = e1 x normalize(w - (e0.w) e0)
//
// where w is v projected into the plane orthogonal to e1. The projection
// matters: with the raw v the equation's only solution picks up a factor
// sin(angle(u, v)) on e0 and leaves e2 leaning into e1, so the solve runs on
// w to keep the converged triad orthonormal for any non-parallel inputs.
//
// The boolean result reports whether the refinement converged; a
// non-converged frame is still returned and the caller decides how to
// account for it.
func axisFrame(u, v geometry.Vec3, tol float64) (*geometry.Frame, bool, error) {
	e1, err := u.Normalize(tol)
	if err != nil {
		return nil, false, ErrDegenerateAxis
	}
	if _, err := v.Normalize(tol); err != nil {
		return nil, false, ErrDegenerateAxis
	}

	// Transmural direction with the apicobasal component removed; the
	// seed e2 is its unit vector.
	w := v.Sub(e1.Scale(e1.Dot(v)))
	e2, err := w.Normalize(tol)
	if err != nil {
		// v parallel to u.
		return nil, false, ErrDegenerateAxis
	}
	e0 := e1.Cross(e2)

	solveOpts := fixpoint.DefaultOptions()
	solveOpts.Tol = tol
	res := fixpoint.Solve(func(x geometry.Vec3) geometry.Vec3 {
		y, yerr := w.Sub(x.Scale(x.Dot(w))).Normalize(tol)
		if yerr != nil {
			return x
		}
		return e1.Cross(y)
	}, e0, solveOpts)
	e0 = res.X

	e2, err = w.Sub(e0.Scale(e0.Dot(w))).Normalize(tol)
	if err != nil {
		return nil, res.Converged, ErrDegenerateAxis
	}
	return geometry.NewFrame(e0, e1, e2), res.Converged, nil
}
