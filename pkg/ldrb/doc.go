// Package ldrb assigns a local orthonormal material frame (fiber, sheet and
// sheet-normal directions) to every sample point of a volumetric cardiac
// geometry, following the rule-based method of Bayer et al.
//
// The package is a pure computational core. The Laplace-Dirichlet solves
// that produce the transmural depth fields and their gradients are the
// caller's job: per sample point the core consumes three scalar depth values
// (left ventricle, right ventricle, epicardium), their spatial gradients and
// an apex-to-base gradient, and produces the three frame axes. Points where
// no frame is defined keep zero output vectors and are flagged rather than
// reported as errors.
//
// ComputeFiberSheetSystem is the entry point; every sample point is
// independent, so the field is assembled in parallel.
package ldrb
