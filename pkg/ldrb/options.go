package ldrb

import "runtime"

// Default fiber and sheet angles in degrees, from the original rule-based
// fiber paper (Bayer et al. 2012).
const (
	DefaultAlphaEndo = 40.0
	DefaultAlphaEpi  = -50.0
	DefaultBetaEndo  = -65.0
	DefaultBetaEpi   = 25.0
)

// Default tolerances. PointTol decides whether a depth value is large enough
// for the local frame of that surface to exist; RegionTol is the coarser
// threshold used only to pick an angle set, giving hysteresis between
// "classify as LV/RV/septum" and "frame undefined".
const (
	DefaultPointTol  = 1e-7
	DefaultRegionTol = 1e-3
)

// AngleSet holds the four angles (degrees) describing fiber and sheet
// orientation at the endocardial and epicardial extremes of one region.
type AngleSet struct {
	AlphaEndo float64
	AlphaEpi  float64
	BetaEndo  float64
	BetaEpi   float64
}

// Angles is the full angle configuration. The LV set is always present; the
// RV and septum fields are optional and each one falls back independently to
// its LV counterpart. Pointers (rather than zero sentinels) let an explicit
// 0-degree angle survive resolution.
type Angles struct {
	AlphaEndoLV float64
	AlphaEpiLV  float64
	BetaEndoLV  float64
	BetaEpiLV   float64

	AlphaEndoRV *float64
	AlphaEpiRV  *float64
	BetaEndoRV  *float64
	BetaEpiRV   *float64

	AlphaEndoSept *float64
	AlphaEpiSept  *float64
	BetaEndoSept  *float64
	BetaEpiSept   *float64
}

// DefaultAngles returns the paper's default LV angles with RV and septum
// unset (inheriting from LV).
func DefaultAngles() Angles {
	return Angles{
		AlphaEndoLV: DefaultAlphaEndo,
		AlphaEpiLV:  DefaultAlphaEpi,
		BetaEndoLV:  DefaultBetaEndo,
		BetaEpiLV:   DefaultBetaEpi,
	}
}

// ResolvedAngles is the per-region angle configuration after LV fallback.
type ResolvedAngles struct {
	LV   AngleSet
	RV   AngleSet
	Sept AngleSet
}

// Resolve applies the per-field LV fallback and returns the three concrete
// angle sets. Resolution happens once, before the per-point loop.
func (a Angles) Resolve() ResolvedAngles {
	lv := AngleSet{
		AlphaEndo: a.AlphaEndoLV,
		AlphaEpi:  a.AlphaEpiLV,
		BetaEndo:  a.BetaEndoLV,
		BetaEpi:   a.BetaEpiLV,
	}
	return ResolvedAngles{
		LV: lv,
		RV: AngleSet{
			AlphaEndo: orDefault(a.AlphaEndoRV, lv.AlphaEndo),
			AlphaEpi:  orDefault(a.AlphaEpiRV, lv.AlphaEpi),
			BetaEndo:  orDefault(a.BetaEndoRV, lv.BetaEndo),
			BetaEpi:   orDefault(a.BetaEpiRV, lv.BetaEpi),
		},
		Sept: AngleSet{
			AlphaEndo: orDefault(a.AlphaEndoSept, lv.AlphaEndo),
			AlphaEpi:  orDefault(a.AlphaEpiSept, lv.AlphaEpi),
			BetaEndo:  orDefault(a.BetaEndoSept, lv.BetaEndo),
			BetaEpi:   orDefault(a.BetaEpiSept, lv.BetaEpi),
		},
	}
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

// ProgressFunc is invoked with the number of processed points at coarse
// milestones: once before work starts, around every tenth of the field, and
// once at completion. It must be safe to call from the goroutine that
// happens to cross a milestone; the assembler serializes the calls.
type ProgressFunc func(done, total int)

// Options configures a field computation.
type Options struct {
	// Angles is the angle configuration; zero value means all-zero LV
	// angles, so callers normally start from DefaultAngles.
	Angles Angles

	// PointTol is the rule engine tolerance (default 1e-7).
	PointTol float64

	// RegionTol is the region classification tolerance (default 1e-3).
	RegionTol float64

	// Workers is the number of goroutines assembling the field.
	// Zero or negative means runtime.NumCPU().
	Workers int

	// Progress, when non-nil, receives coarse progress milestones.
	Progress ProgressFunc
}

// DefaultOptions returns options with the paper's angles and tolerances.
func DefaultOptions() Options {
	return Options{
		Angles:    DefaultAngles(),
		PointTol:  DefaultPointTol,
		RegionTol: DefaultRegionTol,
		Workers:   runtime.NumCPU(),
	}
}

func (o Options) withDefaults() Options {
	if o.PointTol <= 0 {
		o.PointTol = DefaultPointTol
	}
	if o.RegionTol <= 0 {
		o.RegionTol = DefaultRegionTol
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}
