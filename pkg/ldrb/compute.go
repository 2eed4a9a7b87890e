package ldrb

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"cardiofiber/pkg/geometry"
)

// ComputeFiberSheetSystem assembles the fiber, sheet and sheet-normal fields
// over all sample points described by in.
//
// Each point is classified into the LV, RV or septal angle region by
// comparing its lv and rv depth values against the region tolerance; points
// matching no region (deep epicardial points far from both ventricular
// surfaces) fall back to the LV angles and are flagged with
// FlagRegionFallback. A point-level failure never aborts the computation:
// points without a defined frame keep zero output vectors and carry
// FlagUndefined.
//
// Points are independent, so the field is assembled by opts.Workers
// goroutines over disjoint index ranges. The only errors are malformed input
// shapes, detected before any per-point work, and context cancellation.
func ComputeFiberSheetSystem(ctx context.Context, in Input, opts Options) (*FiberSheetSystem, error) {
	n, err := in.validate()
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	// Absent RV fields mean a pure-LV geometry.
	rvScalar := in.RVScalar
	if rvScalar == nil {
		rvScalar = make([]float64, n)
	}
	rvGradient := in.RVGradient
	if rvGradient == nil {
		rvGradient = make([]geometry.Vec3, n)
	}

	angles := opts.Angles.Resolve()

	out := &FiberSheetSystem{
		Fiber:       make([]geometry.Vec3, n),
		Sheet:       make([]geometry.Vec3, n),
		SheetNormal: make([]geometry.Vec3, n),
		Flags:       make([]PointFlag, n),
	}
	if n == 0 {
		return out, nil
	}

	var (
		done       atomic.Int64
		progressMu sync.Mutex
	)
	stride := n / 10
	if stride == 0 {
		stride = 1
	}
	if opts.Progress != nil {
		opts.Progress(0, n)
	}
	tick := func() {
		d := int(done.Add(1))
		if opts.Progress != nil && (d == n || d%stride == 0) {
			progressMu.Lock()
			opts.Progress(d, n)
			progressMu.Unlock()
		}
	}

	workers := opts.Workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				// Chunk-relative, so every worker polls at least
				// once however its range falls.
				if (i-start)%1024 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				computePoint(i, &in, rvScalar, rvGradient, angles, opts, out)
				tick()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Stats = tallyStats(out.Flags)
	return out, nil
}

// computePoint classifies one sample point, runs the rule engine with the
// selected angle set, and writes the frame columns into the output fields.
func computePoint(
	i int,
	in *Input,
	rvScalar []float64,
	rvGradient []geometry.Vec3,
	angles ResolvedAngles,
	opts Options,
	out *FiberSheetSystem,
) {
	lv := in.LVScalar[i]
	rv := rvScalar[i]
	epi := in.EpiScalar[i]

	var set AngleSet
	tol := opts.RegionTol
	switch {
	case lv > tol && rv <= tol:
		set = angles.LV
	case lv <= tol && rv > tol:
		set = angles.RV
	case lv > tol && rv > tol:
		set = angles.Sept
	default:
		// Somewhere at the epicardium, far from both ventricular
		// surfaces. Use the LV angles and flag the point; the
		// microstructure may be locally implausible here.
		set = angles.LV
		out.Flags[i] |= FlagRegionFallback
	}

	q, converged := systemAtPoint(
		lv, rv, epi,
		in.LVGradient[i], rvGradient[i], in.EpiGradient[i], in.ApexGradient[i],
		set, opts.PointTol,
	)
	if !converged {
		out.Flags[i] |= FlagNonConverged
	}
	if q == nil {
		out.Flags[i] |= FlagUndefined
		return
	}
	out.Fiber[i] = q.Col(0)
	out.Sheet[i] = q.Col(1)
	out.SheetNormal[i] = q.Col(2)
}

func tallyStats(flags []PointFlag) Stats {
	s := Stats{Points: len(flags)}
	for _, f := range flags {
		if f&FlagUndefined != 0 {
			s.Undefined++
		}
		if f&FlagRegionFallback != 0 {
			s.RegionFallbacks++
		}
		if f&FlagNonConverged != 0 {
			s.NonConverged++
		}
	}
	return s
}
