package nodal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gonodal/internal/curve"
)

// OperatingPoint is the IPR/VLP crossing
type OperatingPoint struct {
	Rate     float64 `json:"rate"`     // STB/D
	Pressure float64 `json:"pressure"` // psi
	Index    int     `json:"index"`    // into the IPR grid

	IPRPressure float64 `json:"ipr_pressure"`
	VLPPressure float64 `json:"vlp_pressure"`
}

// Intersect finds the operating point as the IPR grid point where the
// VLP pressure, interpolated onto the IPR rates, is closest to the IPR
// pressure. Ties resolve to the first index. The reported pressure is the
// mean of the two curves at that point.
func Intersect(iprCurve, vlpCurve curve.Curve) (OperatingPoint, error) {
	if len(iprCurve) == 0 || len(vlpCurve) == 0 {
		return OperatingPoint{}, fmt.Errorf("intersect: %w", curve.ErrEmpty)
	}

	rates := iprCurve.Rates()
	vlpAt, err := curve.Interpolate(vlpCurve.Rates(), vlpCurve.Pressures(), rates)
	if err != nil {
		return OperatingPoint{}, fmt.Errorf("intersect: %w", err)
	}

	diff := make([]float64, len(rates))
	for i, p := range iprCurve {
		diff[i] = math.Abs(p.Pressure - vlpAt[i])
	}
	idx := floats.MinIdx(diff)

	return OperatingPoint{
		Rate:        rates[idx],
		Pressure:    0.5 * (iprCurve[idx].Pressure + vlpAt[idx]),
		Index:       idx,
		IPRPressure: iprCurve[idx].Pressure,
		VLPPressure: vlpAt[idx],
	}, nil
}
