package ldrb

import (
	"errors"
	"fmt"

	"cardiofiber/pkg/geometry"
)

// ErrFieldSize is returned when the input field lengths are inconsistent.
var ErrFieldSize = errors.New("ldrb: field size mismatch")

// Input carries the per-point scalar depth fields and gradient fields
// produced by the external Laplace-Dirichlet solver, in a consistent
// sample-point ordering. The RV fields are optional: leaving them nil
// produces a pure-LV geometry.
type Input struct {
	LVScalar   []float64
	LVGradient []geometry.Vec3

	EpiScalar   []float64
	EpiGradient []geometry.Vec3

	// ApexGradient is the apex-to-base gradient field.
	ApexGradient []geometry.Vec3

	RVScalar   []float64
	RVGradient []geometry.Vec3
}

// validate checks that all supplied fields describe the same number of
// sample points and returns that number. RV fields may be absent, but when
// present must match too.
func (in *Input) validate() (int, error) {
	n := len(in.LVScalar)
	check := func(name string, got int) error {
		if got != n {
			return fmt.Errorf("%w: %s has %d entries, want %d", ErrFieldSize, name, got, n)
		}
		return nil
	}
	if err := check("lv_gradient", len(in.LVGradient)); err != nil {
		return 0, err
	}
	if err := check("epi_scalar", len(in.EpiScalar)); err != nil {
		return 0, err
	}
	if err := check("epi_gradient", len(in.EpiGradient)); err != nil {
		return 0, err
	}
	if err := check("apex_gradient", len(in.ApexGradient)); err != nil {
		return 0, err
	}
	if in.RVScalar != nil {
		if err := check("rv_scalar", len(in.RVScalar)); err != nil {
			return 0, err
		}
	}
	if in.RVGradient != nil {
		if err := check("rv_gradient", len(in.RVGradient)); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// PointFlag records per-point conditions observed during assembly.
type PointFlag uint8

const (
	// FlagUndefined marks a point where no frame is defined; its output
	// vectors are zero.
	FlagUndefined PointFlag = 1 << iota

	// FlagRegionFallback marks a point whose region could not be
	// classified (both lv and rv below the region tolerance) and which
	// therefore used the LV angle set.
	FlagRegionFallback

	// FlagNonConverged marks a point where at least one frame
	// constructor solve hit its iteration cap. The frame is still used.
	FlagNonConverged
)

// Stats aggregates the per-point flags over a whole field.
type Stats struct {
	Points          int
	Undefined       int
	RegionFallbacks int
	NonConverged    int
}

// FiberSheetSystem is the assembled output: one fiber, sheet and
// sheet-normal direction per sample point, in input ordering. Points with no
// defined frame hold zero vectors and carry FlagUndefined.
type FiberSheetSystem struct {
	Fiber       []geometry.Vec3
	Sheet       []geometry.Vec3
	SheetNormal []geometry.Vec3

	Flags []PointFlag
	Stats Stats
}
