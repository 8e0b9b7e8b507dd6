package curve

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

var (
	// ErrEmpty is returned when an operation needs at least one point.
	ErrEmpty = errors.New("curve has no points")
	// ErrNotIncreasing is returned when interpolation abscissae are not strictly increasing.
	ErrNotIncreasing = errors.New("rates must be strictly increasing")
)

// Point is a flow rate (STB/D) and pressure (psi) pair
type Point struct {
	Rate     float64 `json:"rate"`
	Pressure float64 `json:"pressure"`
}

// Curve is an ordered sequence of points with non-decreasing rate.
// Curves are built fresh per evaluation and never mutated in place.
type Curve []Point

// New zips rates and pressures into a Curve
func New(rates, pressures []float64) (Curve, error) {
	if len(rates) != len(pressures) {
		return nil, fmt.Errorf("curve: %d rates but %d pressures", len(rates), len(pressures))
	}
	c := make(Curve, len(rates))
	for i := range rates {
		c[i] = Point{Rate: rates[i], Pressure: pressures[i]}
	}
	return c, nil
}

// Rates returns a copy of the rate column
func (c Curve) Rates() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Rate
	}
	return out
}

// Pressures returns a copy of the pressure column
func (c Curve) Pressures() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Pressure
	}
	return out
}

// At linearly interpolates the pressure at rate q, holding the end values
// outside the curve's rate range.
func (c Curve) At(q float64) (float64, error) {
	v, err := Interpolate(c.Rates(), c.Pressures(), []float64{q})
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Arange mirrors numpy.arange(start, stop, step): values start + i·step
// for every i with start + i·step < stop.
func Arange(start, stop, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("curve: step must be positive, got %v", step)
	}
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil, nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}

// Interpolate evaluates the piecewise-linear function through (xs, ys) at
// each value of at. Values outside [xs[0], xs[n-1]] take the nearest end
// value. xs must be strictly increasing.
func Interpolate(xs, ys, at []float64) ([]float64, error) {
	if len(xs) == 0 {
		return nil, ErrEmpty
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("curve: %d abscissae but %d ordinates", len(xs), len(ys))
	}

	out := make([]float64, len(at))
	if len(xs) == 1 {
		for i := range out {
			out[i] = ys[0]
		}
		return out, nil
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: x[%d]=%v <= x[%d]=%v", ErrNotIncreasing, i, xs[i], i-1, xs[i-1])
		}
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, err
	}
	for i, x := range at {
		out[i] = pl.Predict(x)
	}
	return out, nil
}
