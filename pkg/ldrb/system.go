package ldrb

import "cardiofiber/pkg/geometry"

// systemAtPoint computes the oriented fiber-sheet frame for a single sample
// point, given its depth values, gradients and the angle set of its region.
//
// A nil frame means no frame is defined at the point (all depth values below
// tolerance, or every region frame degenerate). The boolean reports whether
// all frame constructor solves behind the result converged.
func systemAtPoint(
	lv, rv, epi float64,
	gradLV, gradRV, gradEpi, gradAB geometry.Vec3,
	angles AngleSet,
	tol float64,
) (*geometry.Frame, bool) {
	// Endocardial angles span [-alpha_endo, +alpha_endo] across the
	// LV-to-RV depth, encoding the opposite fiber handedness of the two
	// endocardial surfaces. The transmural blend runs endo-to-epi.
	alphaSepta := func(d float64) float64 { return angles.AlphaEndo * (1 - 2*d) }
	betaSepta := func(d float64) float64 { return angles.BetaEndo * (1 - 2*d) }
	alphaWall := func(d float64) float64 { return angles.AlphaEndo*(1-d) + angles.AlphaEpi*d }
	betaWall := func(d float64) float64 { return angles.BetaEndo*(1-d) + angles.BetaEpi*d }

	// Relative depth between the two ventricular surfaces. Points where
	// both depths vanish default to the midpoint.
	depth := 0.5
	if lv+rv >= tol {
		depth = rv / (lv + rv)
	}

	converged := true

	var qLV *geometry.Frame
	if lv > tol {
		if f, conv, err := axisFrame(gradAB, gradLV.Neg(), tol); err == nil {
			qLV = orientFrame(f, alphaSepta(depth), betaSepta(depth))
			converged = converged && conv
		}
	}

	var qRV *geometry.Frame
	if rv > tol {
		if f, conv, err := axisFrame(gradAB, gradRV, tol); err == nil {
			qRV = orientFrame(f, alphaSepta(depth), betaSepta(depth))
			converged = converged && conv
		}
	}

	qEndo := bislerp(qLV, qRV, depth)

	var qEpi *geometry.Frame
	if epi > tol {
		if f, conv, err := axisFrame(gradAB, gradEpi, tol); err == nil {
			qEpi = orientFrame(f, alphaWall(epi), betaWall(epi))
			converged = converged && conv
		}
	}

	return bislerp(qEndo, qEpi, epi), converged
}
