// Package hydraulics computes multiphase pressure drop along a single pipe
// segment using a Hagedorn-Brown style holdup correlation.
package hydraulics

import (
	"math"

	"github.com/alexiusacademia/gonodal/internal/fluid"
	"github.com/alexiusacademia/gonodal/internal/wellbore"
)

// Solver constants
const (
	MaxIterations    = 20
	Tolerance        = 1.0 // psi
	LaminarReynolds  = 2100.0
	MaxHoldup        = 0.95
	SecondsPerDay    = 86400.0
	CubicFeetPerBbl  = 5.615
	SquareInchPerFt2 = 144.0
)

// Conditions are the boundary conditions of a segment solve
type Conditions struct {
	InletPressure     float64 // psia, at the top of the segment
	Rate              float64 // liquid rate (STB/D)
	InletTemperature  float64 // °F
	OutletTemperature float64 // °F
}

// Result is the outcome of a segment solve. A solve that hits the
// iteration cap keeps its last iterate and reports Converged = false.
type Result struct {
	OutletPressure float64 // psia, at the bottom of the segment
	Iterations     int
	Converged      bool
	Gradient       float64 // psi/ft
	Holdup         float64 // liquid holdup fraction
}

// Solver bounds the fixed-point iteration of a segment solve. A pass
// converges when the outlet moves by less than Tolerance psi.
type Solver struct {
	MaxIterations int
	Tolerance     float64 // psi
}

// DefaultSolver stops after MaxIterations passes or a move under 1 psi.
var DefaultSolver = Solver{MaxIterations: MaxIterations, Tolerance: Tolerance}

// Solve runs DefaultSolver.
func Solve(seg wellbore.PipeSegment, fl fluid.Sample, c Conditions) Result {
	return DefaultSolver.Solve(seg, fl, c)
}

// Solve walks down the segment from its inlet and returns the outlet
// pressure. Fixed-point iteration on the outlet pressure: each pass
// evaluates fluid properties at the average pressure and temperature of
// the segment, recomputes the gradient and updates the outlet. When the
// cap is hit the last iterate is returned with Converged = false.
func (s Solver) Solve(seg wellbore.PipeSegment, fl fluid.Sample, c Conditions) Result {
	limit := s.MaxIterations
	if limit <= 0 {
		limit = MaxIterations
	}

	length := seg.Length()
	hydrostatic := c.InletPressure + fl.SurfaceLiquidDensity()*length/SquareInchPerFt2

	if c.Rate <= 0 {
		return Result{
			OutletPressure: hydrostatic,
			Converged:      true,
			Gradient:       fl.SurfaceLiquidDensity() / SquareInchPerFt2,
			Holdup:         1,
		}
	}

	tAvg := 0.5 * (c.InletTemperature + c.OutletTemperature)
	res := Result{OutletPressure: hydrostatic}
	for i := 1; i <= limit; i++ {
		pAvg := 0.5 * (c.InletPressure + res.OutletPressure)
		g := gradient(seg, fl, fl.Properties(pAvg, tAvg), c.Rate)

		next := c.InletPressure + g.dpdz*length
		delta := math.Abs(next - res.OutletPressure)

		res.OutletPressure = next
		res.Iterations = i
		res.Gradient = g.dpdz
		res.Holdup = g.holdup

		if delta < s.Tolerance {
			res.Converged = true
			break
		}
	}
	return res
}

type gradientTerms struct {
	dpdz   float64
	holdup float64
}

// gradient evaluates the total pressure gradient (psi/ft) at one set of
// average conditions.
func gradient(seg wellbore.PipeSegment, fl fluid.Sample, props fluid.PVT, rate float64) gradientTerms {
	area := seg.Area()
	d := seg.Diameter
	if area <= 0 || d <= 0 {
		return gradientTerms{dpdz: props.LiquidDensity / SquareInchPerFt2, holdup: 1}
	}

	qo := rate * (1 - fl.WaterCut)
	qw := rate * fl.WaterCut
	freeGas := qo * math.Max(fl.GOR-props.Rs, 0) // scf/D

	ql := (qo*props.Bo + qw*props.Bw) * CubicFeetPerBbl / SecondsPerDay // ft³/s
	qg := freeGas * props.Bg / SecondsPerDay                            // ft³/s

	vsl := ql / area
	vsg := qg / area
	vm := vsl + vsg

	noSlip := 1.0
	if vm > 0 {
		noSlip = vsl / vm
	}

	hl := holdup(props, vsl, vsg, d, noSlip)

	rhoM := hl*props.LiquidDensity + (1-hl)*props.GasDensity
	muM := math.Pow(props.LiquidViscosity, hl) * math.Pow(props.GasViscosity, 1-hl)

	f := 0.0
	if muM > 0 {
		re := 1488 * rhoM * vm * d / muM
		f = FrictionFactor(re, seg.Roughness/d)
	}

	elevation := rhoM / SquareInchPerFt2
	return gradientTerms{dpdz: elevation + FrictionGradient(f, rhoM, vm, d), holdup: hl}
}

// FrictionGradient is the friction term of the pressure gradient (psi/ft)
// for friction factor f, mixture density rhoM (lb/ft³), mixture velocity
// vm (ft/s) and diameter d (ft):
//
//	f·ρm·v_m²/(2·d·144)
func FrictionGradient(f, rhoM, vm, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return f * rhoM * vm * vm / (2 * d * SquareInchPerFt2)
}

// holdup returns the liquid holdup from the dimensionless velocity,
// diameter and viscosity numbers, clamped to [noSlip, 0.95]. When the
// no-slip holdup exceeds 0.95 the floor wins.
func holdup(props fluid.PVT, vsl, vsg, d, noSlip float64) float64 {
	rhoL, sigma := props.LiquidDensity, props.LiquidTension
	if rhoL <= 0 || sigma <= 0 {
		return noSlip
	}

	ratio := math.Pow(rhoL/sigma, 0.25)
	nlv := 1.938 * vsl * ratio
	ngv := 1.938 * vsg * ratio
	nd := 120.872 * d * math.Sqrt(rhoL/sigma)
	nl := 0.15726 * props.LiquidViscosity * math.Pow(1/(rhoL*sigma*sigma*sigma), 0.25)

	x := 0.0
	if nd > 0 {
		x = nlv * math.Pow(ngv, 0.38) / math.Pow(nd, 2.14)
	}
	if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}

	hl := SecondaryCorrection(nl) * (0.18 + 0.82*math.Pow(x, 0.25))
	hl = math.Min(hl, MaxHoldup)
	return math.Max(hl, noSlip)
}

// SecondaryCorrection returns ψ for the liquid viscosity number N_l
func SecondaryCorrection(nl float64) float64 {
	switch {
	case nl < 0.002:
		return 1.00
	case nl < 0.01:
		return 1.05
	case nl < 0.1:
		return 1.10
	default:
		return 1.20
	}
}

// FrictionFactor returns the Moody friction factor for Reynolds number re
// and relative roughness rel (ε/d): 64/Re when laminar, otherwise the
// Swamee-Jain explicit approximation of Colebrook.
func FrictionFactor(re, rel float64) float64 {
	switch {
	case re <= 0 || math.IsNaN(re):
		return 0
	case re < LaminarReynolds:
		return 64 / re
	}
	l := math.Log10(math.Max(rel, 0)/3.7 + 5.74/math.Pow(re, 0.9))
	if l == 0 {
		return 0
	}
	return 0.25 / (l * l)
}
