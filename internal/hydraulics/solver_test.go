package hydraulics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexiusacademia/gonodal/internal/fluid"
	"github.com/alexiusacademia/gonodal/internal/wellbore"
)

func gassyOil() fluid.Sample {
	return fluid.Sample{Name: "gassy", WaterCut: 0.3, GOR: 500, GasSG: 0.7, WaterSG: 1.05, API: 35}
}

func tubing(idInches float64) wellbore.PipeSegment {
	return wellbore.Tubular{Name: "tbg", ToMD: 5000, ID: idInches, Roughness: 0.0006}.Segment(0, 5000)
}

func TestZeroRateIsHydrostatic(t *testing.T) {
	fl := gassyOil()
	res := Solve(tubing(2.441), fl, Conditions{InletPressure: 100, InletTemperature: 60, OutletTemperature: 160})

	want := 100 + fl.SurfaceLiquidDensity()*5000/144
	assert.InDelta(t, want, res.OutletPressure, 1e-9)
	assert.Equal(t, 0, res.Iterations)
	assert.True(t, res.Converged)
}

func TestDeadOilIsSinglePhase(t *testing.T) {
	fl := fluid.Sample{WaterCut: 0.5, GOR: 0, GasSG: 0.7, WaterSG: 1.0, API: 30}
	res := Solve(tubing(2.441), fl, Conditions{InletPressure: 200, Rate: 800, InletTemperature: 80, OutletTemperature: 150})

	assert.True(t, res.Converged)
	assert.Equal(t, 1.0, res.Holdup)
	assert.LessOrEqual(t, res.Iterations, MaxIterations)
	assert.Greater(t, res.OutletPressure, 200.0)
}

func TestGassyFlow(t *testing.T) {
	res := Solve(tubing(2.441), gassyOil(), Conditions{InletPressure: 100, Rate: 500, InletTemperature: 60, OutletTemperature: 160})

	assert.GreaterOrEqual(t, res.Iterations, 1)
	assert.LessOrEqual(t, res.Iterations, MaxIterations)
	assert.Greater(t, res.OutletPressure, 100.0)
	assert.Greater(t, res.Gradient, 0.0)
	assert.LessOrEqual(t, res.Holdup, 1.0)
	assert.Greater(t, res.Holdup, 0.0)
}

func TestLargerDiameterLowersOutletPressure(t *testing.T) {
	c := Conditions{InletPressure: 100, Rate: 500, InletTemperature: 60, OutletTemperature: 160}
	narrow := Solve(tubing(2.0), gassyOil(), c)
	wide := Solve(tubing(4.0), gassyOil(), c)

	assert.Less(t, wide.OutletPressure, narrow.OutletPressure)
}

func TestSolveIsPure(t *testing.T) {
	c := Conditions{InletPressure: 100, Rate: 350, InletTemperature: 60, OutletTemperature: 160}
	assert.Equal(t, Solve(tubing(2.441), gassyOil(), c), Solve(tubing(2.441), gassyOil(), c))
}

func TestFrictionFactor(t *testing.T) {
	tests := []struct {
		name  string
		re    float64
		rel   float64
		want  float64
		delta float64
	}{
		{name: "no flow", re: 0, want: 0},
		{name: "laminar", re: 1000, want: 0.064, delta: 1e-12},
		{name: "smooth turbulent", re: 1e5, want: 0.0179, delta: 5e-4},
		{name: "rough turbulent", re: 1e6, rel: 0.01, want: 0.038, delta: 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FrictionFactor(tt.re, tt.rel), tt.delta)
		})
	}
}

func TestSecondaryCorrection(t *testing.T) {
	tests := []struct {
		nl   float64
		want float64
	}{
		{nl: 0.001, want: 1.00},
		{nl: 0.005, want: 1.05},
		{nl: 0.05, want: 1.10},
		{nl: 0.5, want: 1.20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SecondaryCorrection(tt.nl), "N_l=%v", tt.nl)
	}
}

func TestHoldupFloorWins(t *testing.T) {
	props := gassyOil().Properties(1000, 150)
	// Almost no gas: no-slip holdup above the 0.95 cap.
	hl := holdup(props, 1.0, 0.001, 0.2, 0.999)
	assert.Equal(t, 0.999, hl)
}

func TestFrictionGradient(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		rhoM float64
		vm   float64
		d    float64
		want float64
	}{
		{name: "turbulent", f: 0.02, rhoM: 50, vm: 10, d: 0.2, want: 0.02 * 50 * 100 / (2 * 0.2 * 144)},
		{name: "no flow", f: 0.02, rhoM: 50, vm: 0, d: 0.2, want: 0},
		{name: "zero diameter", f: 0.02, rhoM: 50, vm: 10, d: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FrictionGradient(tt.f, tt.rhoM, tt.vm, tt.d), 1e-12)
		})
	}
	assert.InDelta(t, 1.7361111, FrictionGradient(0.02, 50, 10, 0.2), 1e-6)
}

func TestSinglePhaseGradientTerms(t *testing.T) {
	fl := fluid.Sample{WaterCut: 0.5, GOR: 0, GasSG: 0.7, WaterSG: 1.0, API: 30}
	seg := tubing(2.441)
	props := fl.Properties(1000, 110)
	rate := 1500.0

	ql := (rate*0.5*props.Bo + rate*0.5*props.Bw) * CubicFeetPerBbl / SecondsPerDay
	vm := ql / seg.Area()
	rho := props.LiquidDensity
	re := 1488 * rho * vm * seg.Diameter / props.LiquidViscosity
	f := FrictionFactor(re, seg.Roughness/seg.Diameter)
	want := rho/144 + f*rho*vm*vm/(2*seg.Diameter*144)

	g := gradient(seg, fl, props, rate)
	assert.Equal(t, 1.0, g.holdup)
	assert.InDelta(t, want, g.dpdz, 1e-9)
	assert.Greater(t, g.dpdz-rho/144, 0.1, "friction at %.2f ft/s", vm)
}

func TestSolveStopsAtIterationCap(t *testing.T) {
	c := Conditions{InletPressure: 100, Rate: 2000, InletTemperature: 60, OutletTemperature: 160}
	// A zero tolerance can never be met.
	res := Solver{MaxIterations: MaxIterations, Tolerance: 0}.Solve(tubing(1.995), gassyOil(), c)

	assert.False(t, res.Converged)
	assert.Equal(t, MaxIterations, res.Iterations)
	assert.False(t, math.IsNaN(res.OutletPressure) || math.IsInf(res.OutletPressure, 0))
	assert.Greater(t, res.OutletPressure, c.InletPressure)

	unset := Solver{}.Solve(tubing(1.995), gassyOil(), c)
	assert.Equal(t, MaxIterations, unset.Iterations)
	assert.False(t, unset.Converged)
}

func TestSolveUsesDefaultSolver(t *testing.T) {
	c := Conditions{InletPressure: 100, Rate: 500, InletTemperature: 60, OutletTemperature: 160}
	assert.Equal(t, DefaultSolver.Solve(tubing(2.441), gassyOil(), c), Solve(tubing(2.441), gassyOil(), c))
}
