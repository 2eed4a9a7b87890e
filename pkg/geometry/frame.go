package geometry

import (
	"gonum.org/v1/gonum/mat"
)

// Frame is a 3x3 rotation matrix whose columns form a right-handed
// orthonormal basis. In the fiber generation core the columns carry, in
// order, the circumferential (e0), apicobasal (e1) and transmural (e2)
// directions of a local coordinate system; after orientation they become the
// fiber, sheet and sheet-normal axes.
//
// An absent frame is represented by a nil *Frame. All constructors return
// pointers so "no frame defined at this point" is a first-class state and can
// never be confused with a valid rotation.
type Frame struct {
	m *mat.Dense
}

// NewFrame builds a frame from three column vectors. The caller is
// responsible for the columns being orthonormal.
func NewFrame(e0, e1, e2 Vec3) *Frame {
	return &Frame{m: mat.NewDense(3, 3, []float64{
		e0.X, e1.X, e2.X,
		e0.Y, e1.Y, e2.Y,
		e0.Z, e1.Z, e2.Z,
	})}
}

// Col returns column j of the frame as a vector.
func (f *Frame) Col(j int) Vec3 {
	return Vec3{f.m.At(0, j), f.m.At(1, j), f.m.At(2, j)}
}

// At returns the matrix entry at row i, column j.
func (f *Frame) At(i, j int) float64 {
	return f.m.At(i, j)
}

// Mul returns the frame right-multiplied by r, i.e. f * r.
func (f *Frame) Mul(r *mat.Dense) *Frame {
	var out mat.Dense
	out.Mul(f.m, r)
	return &Frame{m: &out}
}

// Det returns the determinant of the frame matrix (+1 for a proper
// rotation, up to numerical tolerance).
func (f *Frame) Det() float64 {
	return mat.Det(f.m)
}

// OrthonormalityError returns the largest absolute deviation of Q^T Q from
// the identity, a scalar measure of how far the frame is from orthonormal.
func (f *Frame) OrthonormalityError() float64 {
	var qtq mat.Dense
	qtq.Mul(f.m.T(), f.m)
	worst := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if d := qtq.At(i, j) - want; d > worst {
				worst = d
			} else if -d > worst {
				worst = -d
			}
		}
	}
	return worst
}
