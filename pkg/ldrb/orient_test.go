package ldrb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiofiber/pkg/geometry"
)

func identityFrame() *geometry.Frame {
	return geometry.NewFrame(
		geometry.Vec3{X: 1, Y: 0, Z: 0},
		geometry.Vec3{X: 0, Y: 1, Z: 0},
		geometry.Vec3{X: 0, Y: 0, Z: 1},
	)
}

// TestOrientIdentityAngles leaves any frame unchanged at zero angles.
func TestOrientIdentityAngles(t *testing.T) {
	q, _, err := axisFrame(geometry.Vec3{X: 0.3, Y: -1.2, Z: 2.0}, geometry.Vec3{X: 1.0, Y: 0.5, Z: -0.25}, DefaultPointTol)
	require.NoError(t, err)

	framesClose(t, q, orientFrame(q, 0, 0), 1e-15)
}

// TestOrientAlphaOnly rotates the identity frame by the fiber angle alone:
// the fiber axis tilts from e0 toward e1 by alpha degrees.
func TestOrientAlphaOnly(t *testing.T) {
	alpha := 40.0
	ca, sa := math.Cos(alpha*math.Pi/180), math.Sin(alpha*math.Pi/180)

	got := orientFrame(identityFrame(), alpha, 0)
	want := geometry.NewFrame(
		geometry.Vec3{X: ca, Y: sa, Z: 0},
		geometry.Vec3{X: -sa, Y: ca, Z: 0},
		geometry.Vec3{X: 0, Y: 0, Z: 1},
	)
	framesClose(t, want, got, 1e-15)
}

// TestOrientBetaOnly rotates the identity frame by the sheet angle alone:
// the sheet and sheet-normal axes rotate about the fiber axis.
func TestOrientBetaOnly(t *testing.T) {
	beta := -65.0
	cb, sb := math.Cos(beta*math.Pi/180), math.Sin(beta*math.Pi/180)

	got := orientFrame(identityFrame(), 0, beta)
	want := geometry.NewFrame(
		geometry.Vec3{X: 1, Y: 0, Z: 0},
		geometry.Vec3{X: 0, Y: cb, Z: -sb},
		geometry.Vec3{X: 0, Y: sb, Z: cb},
	)
	framesClose(t, want, got, 1e-15)
}

// TestOrientPreservesOrthonormality checks that rotation never degrades the
// frame, whatever the angles.
func TestOrientPreservesOrthonormality(t *testing.T) {
	q, _, err := axisFrame(geometry.Vec3{X: 1, Y: 2, Z: -1}, geometry.Vec3{X: 0.5, Y: -0.5, Z: 3}, DefaultPointTol)
	require.NoError(t, err)

	for _, angles := range [][2]float64{{40, -65}, {-50, 25}, {90, 90}, {180, -180}, {13.7, 121.3}} {
		out := orientFrame(q, angles[0], angles[1])
		assert.Less(t, out.OrthonormalityError(), 1e-12, "alpha=%v beta=%v", angles[0], angles[1])
		assert.InDelta(t, 1, out.Det(), 1e-12)
	}
}
