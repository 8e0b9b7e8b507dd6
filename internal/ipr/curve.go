package ipr

import (
	"sort"

	"github.com/alexiusacademia/gonodal/internal/curve"
)

// DefaultPlotPoints is the number of pwf samples in a pressure-swept IPR
const DefaultPlotPoints = 50

// DefaultMinPwf is the lowest pwf sampled in a pressure-swept IPR (psi)
const DefaultMinPwf = 100.0

// PressureGrid returns the pwf samples used when IPR is tabulated from
// pressure: linspace(100, P_ws, 50) unless n or lo override it.
func PressureGrid(m Model, lo float64, n int) []float64 {
	if n <= 0 {
		n = DefaultPlotPoints
	}
	hi := m.ReservoirPressure()
	if lo < 0 || lo >= hi {
		lo = 0
	}
	return curve.Linspace(lo, hi, n)
}

// FromPressures evaluates q(pwf) for every pwf and returns the points
// ordered by rate.
func FromPressures(m Model, pwfs []float64) curve.Curve {
	c := make(curve.Curve, len(pwfs))
	for i, p := range pwfs {
		c[i] = curve.Point{Rate: m.Rate(p), Pressure: p}
	}
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Rate == c[j].Rate {
			return c[i].Pressure > c[j].Pressure
		}
		return c[i].Rate < c[j].Rate
	})
	return c
}

// FromRates evaluates pwf(q) for every rate. This is the form used by the
// nodal pipeline, where rate is the independent variable.
func FromRates(m Model, rates []float64) curve.Curve {
	c := make(curve.Curve, len(rates))
	for i, q := range rates {
		c[i] = curve.Point{Rate: q, Pressure: m.Pwf(q)}
	}
	return c
}
