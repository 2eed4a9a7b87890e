package ldrb

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"cardiofiber/pkg/geometry"
)

// orientFrame rotates the coordinate system q by the fiber angle alpha and
// the sheet angle beta (both in degrees): alpha rotates in the
// circumferential-apicobasal plane, beta about the resulting fiber axis.
// The result is q * A(alpha) * B(beta).
func orientFrame(q *geometry.Frame, alpha, beta float64) *geometry.Frame {
	ca, sa := math.Cos(alpha*math.Pi/180), math.Sin(alpha*math.Pi/180)
	cb, sb := math.Cos(beta*math.Pi/180), math.Sin(beta*math.Pi/180)

	a := mat.NewDense(3, 3, []float64{
		ca, -sa, 0,
		sa, ca, 0,
		0, 0, 1,
	})
	b := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cb, sb,
		0, -sb, cb,
	})
	return q.Mul(a).Mul(b)
}
