// Package fixpoint provides a damped fixed-point iteration for small vector
// equations of the form x = f(x). It is the root finder behind the frame
// constructor, where the circumferential axis and the transmural axis are
// mutually constrained and the seed is already close to the solution.
package fixpoint

import "cardiofiber/pkg/geometry"

// Options controls the iteration.
type Options struct {
	// Tol is the convergence tolerance on the update step norm.
	Tol float64

	// MaxIter caps the number of iterations.
	MaxIter int

	// Damping in (0,1] weighs the new iterate against the previous one.
	// 1 is plain fixed-point iteration.
	Damping float64
}

// DefaultOptions returns the iteration parameters used by the frame
// constructor.
func DefaultOptions() Options {
	return Options{Tol: 1e-7, MaxIter: 50, Damping: 1.0}
}

// Result reports the outcome of a solve.
type Result struct {
	X          geometry.Vec3
	Iterations int
	Converged  bool
}

// Solve iterates x_{k+1} = (1-d)*x_k + d*f(x_k) from x0 until the step norm
// drops below opts.Tol or MaxIter is reached. Non-convergence is not an
// error: the last iterate is returned with Converged=false and the caller
// decides whether it is usable.
func Solve(f func(geometry.Vec3) geometry.Vec3, x0 geometry.Vec3, opts Options) Result {
	x := x0
	for k := 1; k <= opts.MaxIter; k++ {
		next := f(x)
		if opts.Damping != 1 {
			next = x.Scale(1 - opts.Damping).Add(next.Scale(opts.Damping))
		}
		step := next.Sub(x).Norm()
		x = next
		if step < opts.Tol {
			return Result{X: x, Iterations: k, Converged: true}
		}
	}
	return Result{X: x, Iterations: opts.MaxIter, Converged: false}
}
