package fluid

import "math"

// Bubble point clamp limits
const (
	MinBubblePoint      = 100.0 // psi
	MaxBubblePointRatio = 0.95  // fraction of reservoir pressure
	FallbackBubbleRatio = 0.8   // used when the correlation cannot be evaluated
)

// BubblePoint estimates Pb with the Standing correlation at reservoir
// temperature t (°F), clamped to [100, 0.95·pws]:
//
//	Pb = 18.2·(GOR·γg/γo)^0.83·10^(0.00091·T − 0.0125·API)
//
// When the correlation produces a non-finite value, or pws is too low for
// the clamp range to exist (0.95·pws < 100), it returns 0.8·pws and
// ok = false.
func (s Sample) BubblePoint(t, pws float64) (pb float64, ok bool) {
	if MaxBubblePointRatio*pws < MinBubblePoint {
		return FallbackBubbleRatio * pws, false
	}
	pb = 18.2 * math.Pow(s.GOR*s.GasSG/s.OilSG(), 0.83) * math.Pow(10, 0.00091*t-0.0125*s.API)
	if math.IsNaN(pb) || math.IsInf(pb, 0) {
		return FallbackBubbleRatio * pws, false
	}
	return math.Max(MinBubblePoint, math.Min(pb, MaxBubblePointRatio*pws)), true
}

// DefaultBubblePoint is the fallback used when no fluid sample is available.
func DefaultBubblePoint(pws float64) float64 {
	return FallbackBubbleRatio * pws
}
