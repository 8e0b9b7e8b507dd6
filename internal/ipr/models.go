package ipr

import (
	"fmt"
	"math"
)

// Model is a reservoir inflow relationship between flowing bottomhole
// pressure pwf (psi) and liquid rate q (STB/D).
type Model interface {
	Kind() Kind
	// ReservoirPressure is the static pressure P_ws.
	ReservoirPressure() float64
	// Rate evaluates q(pwf), clamped to q >= 0.
	Rate(pwf float64) float64
	// Pwf inverts the model, clamped to [0, P_ws].
	Pwf(q float64) float64
	// AOF is the absolute open flow potential, q at pwf = 0.
	AOF() float64
}

// WellPI is the straight-line productivity index model: q = PI·(P_ws − pwf)
type WellPI struct {
	Pws float64
	PI  float64
}

// NewWellPI creates a straight-line PI model
func NewWellPI(pws, pi float64) (*WellPI, error) {
	if pi < 0 {
		return nil, fmt.Errorf("%w: productivity index %.4f must be >= 0", ErrInvalidParameters, pi)
	}
	return &WellPI{Pws: pws, PI: pi}, nil
}

func (m *WellPI) Kind() Kind                 { return KindWellPI }
func (m *WellPI) ReservoirPressure() float64 { return m.Pws }

func (m *WellPI) Rate(pwf float64) float64 {
	return math.Max(0, m.PI*(m.Pws-pwf))
}

func (m *WellPI) Pwf(q float64) float64 {
	if q <= 0 {
		return m.Pws
	}
	if m.PI <= 0 {
		return 0
	}
	return clampPwf(m.Pws-q/m.PI, m.Pws)
}

func (m *WellPI) AOF() float64 { return m.PI * m.Pws }

// Composite is the PI-Vogel model: straight-line PI above the bubble point
// Pb and Vogel's curve below it:
//
//	qb = PI·(P_ws − Pb)
//	q  = qb + (PI·Pb/1.8)·(1 − 0.2·(pwf/Pb) − 0.8·(pwf/Pb)²)   for pwf < Pb
type Composite struct {
	Pws float64
	PI  float64
	Pb  float64
}

// NewComposite creates a composite PI-Vogel model
func NewComposite(pws, pi, pb float64) (*Composite, error) {
	if pi < 0 {
		return nil, fmt.Errorf("%w: productivity index %.4f must be >= 0", ErrInvalidParameters, pi)
	}
	if pb <= 0 || pb > pws {
		return nil, fmt.Errorf("%w: bubble point %.1f outside (0, %.1f]", ErrInvalidParameters, pb, pws)
	}
	return &Composite{Pws: pws, PI: pi, Pb: pb}, nil
}

func (m *Composite) Kind() Kind                 { return KindWellPI }
func (m *Composite) ReservoirPressure() float64 { return m.Pws }

// BubblePointRate is qb, the rate at pwf = Pb
func (m *Composite) BubblePointRate() float64 {
	return m.PI * (m.Pws - m.Pb)
}

func (m *Composite) Rate(pwf float64) float64 {
	if pwf >= m.Pb {
		return math.Max(0, m.PI*(m.Pws-pwf))
	}
	r := pwf / m.Pb
	q := m.BubblePointRate() + (m.PI*m.Pb/1.8)*(1-0.2*r-0.8*r*r)
	return math.Max(0, q)
}

// Pwf inverts the linear branch above Pb and solves
// 0.8·r² + 0.2·r − k = 0, k = 1 − 1.8·(q − qb)/(PI·Pb), below it.
func (m *Composite) Pwf(q float64) float64 {
	if q <= 0 {
		return m.Pws
	}
	if m.PI <= 0 {
		return 0
	}
	qb := m.BubblePointRate()
	if q <= qb {
		return clampPwf(m.Pws-q/m.PI, m.Pws)
	}
	k := 1 - 1.8*(q-qb)/(m.PI*m.Pb)
	if k <= 0 {
		return 0
	}
	r := (-0.2 + safeSqrt(0.04+3.2*k)) / 1.6
	return clampPwf(r*m.Pb, m.Pws)
}

// AOF is PI·P_ws, the same as the straight-line model.
func (m *Composite) AOF() float64 { return m.PI * m.Pws }

// OpenFlowRate is qb + PI·Pb/1.8, the composite curve at pwf = 0. It is
// below AOF whenever Pb > 0.
func (m *Composite) OpenFlowRate() float64 { return m.Rate(0) }

// Vogel is the generalised Vogel model:
// q = Q_max·[1 − (1−C)·(pwf/P_ws) − C·(pwf/P_ws)²]
type Vogel struct {
	Pws  float64
	Qmax float64
	C    float64
}

// NewVogel creates a Vogel model
func NewVogel(pws, qmax, c float64) (*Vogel, error) {
	if qmax < 0 {
		return nil, fmt.Errorf("%w: Q_max %.2f must be >= 0", ErrInvalidParameters, qmax)
	}
	if c < 0 || c > 1 {
		return nil, fmt.Errorf("%w: Vogel coefficient %.3f outside [0, 1]", ErrInvalidParameters, c)
	}
	return &Vogel{Pws: pws, Qmax: qmax, C: c}, nil
}

func (m *Vogel) Kind() Kind                 { return KindVogel }
func (m *Vogel) ReservoirPressure() float64 { return m.Pws }

func (m *Vogel) Rate(pwf float64) float64 {
	r := pwf / m.Pws
	return math.Max(0, m.Qmax*(1-(1-m.C)*r-m.C*r*r))
}

// Pwf solves C·r² + (1−C)·r − (1 − q/Q_max) = 0 for r = pwf/P_ws.
func (m *Vogel) Pwf(q float64) float64 {
	if q <= 0 {
		return m.Pws
	}
	if q >= m.Qmax {
		return 0
	}
	k := 1 - q/m.Qmax
	if m.C == 0 {
		return clampPwf(k*m.Pws, m.Pws)
	}
	b := 1 - m.C
	r := (-b + safeSqrt(b*b+4*m.C*k)) / (2 * m.C)
	return clampPwf(r*m.Pws, m.Pws)
}

func (m *Vogel) AOF() float64 { return m.Qmax }

// Fetkovich is the back-pressure model: q = Q_max·[1 − (pwf/P_ws)²]^n
type Fetkovich struct {
	Pws  float64
	Qmax float64
	N    float64
}

// NewFetkovich creates a Fetkovich model
func NewFetkovich(pws, qmax, n float64) (*Fetkovich, error) {
	if qmax < 0 {
		return nil, fmt.Errorf("%w: Q_max %.2f must be >= 0", ErrInvalidParameters, qmax)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: Fetkovich exponent %.3f must be > 0", ErrInvalidParameters, n)
	}
	return &Fetkovich{Pws: pws, Qmax: qmax, N: n}, nil
}

func (m *Fetkovich) Kind() Kind                 { return KindFetkovich }
func (m *Fetkovich) ReservoirPressure() float64 { return m.Pws }

func (m *Fetkovich) Rate(pwf float64) float64 {
	r := pwf / m.Pws
	base := math.Max(0, 1-r*r)
	return math.Max(0, m.Qmax*math.Pow(base, m.N))
}

// Pwf is P_ws·√(1 − (q/Q_max)^(1/n)).
func (m *Fetkovich) Pwf(q float64) float64 {
	if q <= 0 {
		return m.Pws
	}
	if q >= m.Qmax {
		return 0
	}
	return clampPwf(m.Pws*safeSqrt(1-math.Pow(q/m.Qmax, 1/m.N)), m.Pws)
}

func (m *Fetkovich) AOF() float64 { return m.Qmax }

// Jones is the laminar/turbulent model: P_ws − pwf = A·q + B·q²
type Jones struct {
	Pws float64
	A   float64
	B   float64
}

// NewJones creates a Jones model
func NewJones(pws, a, b float64) (*Jones, error) {
	if a < 0 || b < 0 {
		return nil, fmt.Errorf("%w: Jones coefficients A=%.4g, B=%.4g must be >= 0", ErrInvalidParameters, a, b)
	}
	return &Jones{Pws: pws, A: a, B: b}, nil
}

func (m *Jones) Kind() Kind                 { return KindJones }
func (m *Jones) ReservoirPressure() float64 { return m.Pws }

// Rate solves the quadratic for q. With B = 0 it falls back to Δp/A, and
// with both coefficients zero the rate is 0.
func (m *Jones) Rate(pwf float64) float64 {
	dp := m.Pws - pwf
	var q float64
	switch {
	case m.B > 0:
		disc := m.A*m.A + 4*m.B*dp
		if disc >= 0 {
			q = (-m.A + math.Sqrt(disc)) / (2 * m.B)
		}
	case m.A > 0:
		q = dp / m.A
	}
	return math.Max(0, q)
}

func (m *Jones) Pwf(q float64) float64 {
	if q <= 0 {
		return m.Pws
	}
	return clampPwf(m.Pws-m.A*q-m.B*q*q, m.Pws)
}

func (m *Jones) AOF() float64 { return m.Rate(0) }

func clampPwf(p, pws float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(math.Max(p, 0), pws)
}

func safeSqrt(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}
