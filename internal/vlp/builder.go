// Package vlp assembles vertical lift performance curves from segment
// pressure-drop solves along the tubing and casing.
package vlp

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/iter"

	"github.com/alexiusacademia/gonodal/internal/curve"
	"github.com/alexiusacademia/gonodal/internal/fluid"
	"github.com/alexiusacademia/gonodal/internal/hydraulics"
	"github.com/alexiusacademia/gonodal/internal/notice"
	"github.com/alexiusacademia/gonodal/internal/wellbore"
)

// Builder holds everything needed to evaluate the flowing bottomhole
// pressure at a rate.
type Builder struct {
	Geometry             wellbore.Geometry
	Fluid                fluid.Sample
	WellheadPressure     float64 // psia
	SurfaceTemperature   float64 // °F
	ReservoirTemperature float64 // °F

	// Workers bounds the number of rates solved concurrently. Zero uses
	// GOMAXPROCS, one is sequential.
	Workers int

	// Solver bounds each segment solve. The zero value uses
	// hydraulics.DefaultSolver.
	Solver hydraulics.Solver
}

func (b Builder) solver() hydraulics.Solver {
	if b.Solver == (hydraulics.Solver{}) {
		return hydraulics.DefaultSolver
	}
	return b.Solver
}

// Stats summarizes the segment solves behind a curve
type Stats struct {
	Solves       int
	Iterations   int
	NonConverged int
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Solves += other.Solves
	s.Iterations += other.Iterations
	s.NonConverged += other.NonConverged
}

// Result is a VLP curve with its solver statistics and warnings
type Result struct {
	Curve    curve.Curve
	Stats    Stats
	Warnings notice.List
}

// Point is the bottomhole solve at a single rate
type Point struct {
	Rate            float64
	ShoePressure    float64 // psia
	ShoeTemperature float64 // °F
	BottomHole      float64 // psia
	Tubing          hydraulics.Result
	Casing          hydraulics.Result
}

// evaluate solves the tubing from the wellhead down to the shoe, then the
// casing from the shoe down to the perforation. g must already be
// normalized.
func (b Builder) evaluate(g wellbore.Geometry, q float64) Point {
	tShoe := g.ShoeTemperature(b.SurfaceTemperature, b.ReservoirTemperature)

	s := b.solver()
	tbg := s.Solve(g.Tubing, b.Fluid, hydraulics.Conditions{
		InletPressure:     b.WellheadPressure,
		Rate:              q,
		InletTemperature:  b.SurfaceTemperature,
		OutletTemperature: tShoe,
	})
	csg := s.Solve(g.Casing, b.Fluid, hydraulics.Conditions{
		InletPressure:     tbg.OutletPressure,
		Rate:              q,
		InletTemperature:  tShoe,
		OutletTemperature: b.ReservoirTemperature,
	})

	return Point{
		Rate:            q,
		ShoePressure:    tbg.OutletPressure,
		ShoeTemperature: tShoe,
		BottomHole:      csg.OutletPressure,
		Tubing:          tbg,
		Casing:          csg,
	}
}

// Build evaluates the bottomhole pressure at every rate, preserving the
// order of rates. A cancelled context aborts the remaining rates.
func (b Builder) Build(ctx context.Context, rates []float64) (Result, error) {
	g, warnings := b.Geometry.Normalized()

	mapper := iter.Mapper[float64, Point]{MaxGoroutines: b.Workers}
	points, err := mapper.MapErr(rates, func(q *float64) (Point, error) {
		if err := ctx.Err(); err != nil {
			return Point{}, err
		}
		return b.evaluate(g, *q), nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("vlp: %w", err)
	}

	res := Result{Curve: make(curve.Curve, len(points)), Warnings: warnings}
	for i, p := range points {
		res.Curve[i] = curve.Point{Rate: p.Rate, Pressure: p.BottomHole}
		for _, seg := range []struct {
			name string
			r    hydraulics.Result
		}{{"tubing", p.Tubing}, {"casing", p.Casing}} {
			res.Stats.Solves++
			res.Stats.Iterations += seg.r.Iterations
			if !seg.r.Converged {
				res.Stats.NonConverged++
				res.Warnings = append(res.Warnings, notice.New(notice.NonConvergence,
					"%s solve at %.1f STB/D did not converge in %d iterations; using %.1f psi",
					seg.name, p.Rate, seg.r.Iterations, seg.r.OutletPressure))
			}
		}
	}
	return res, nil
}

// At returns the full bottomhole solve at a single rate
func (b Builder) At(q float64) Point {
	g, _ := b.Geometry.Normalized()
	return b.evaluate(g, q)
}
