package fluid

import "math"

// Surface tension constants (dyn/cm)
const (
	WaterTension   = 72.0
	MinOilTension  = 1.0
	ZFactorMin     = 0.7
	ZFactorMax     = 1.2
	MinGasPressure = 14.7 // psia floor for gas properties
)

// PVT holds fluid properties at a given pressure and temperature
type PVT struct {
	Pressure    float64 // psia
	Temperature float64 // °F

	// Solution gas and volume factors
	Rs float64 // Solution GOR (scf/STB)
	Bo float64 // Oil FVF (bbl/STB)
	Bw float64 // Water FVF (bbl/STB)
	Bg float64 // Gas FVF (ft³/scf)
	Z  float64 // Gas compressibility factor

	// Densities (lb/ft³)
	OilDensity    float64
	WaterDensity  float64
	GasDensity    float64
	LiquidDensity float64

	// Viscosities (cp)
	DeadOilViscosity float64
	OilViscosity     float64
	WaterViscosity   float64
	GasViscosity     float64
	LiquidViscosity  float64

	// Interfacial tension (dyn/cm)
	OilTension    float64
	LiquidTension float64
}

// Properties estimates the fluid properties at pressure p (psia) and
// temperature t (°F). It is a pure function of its inputs.
func (s Sample) Properties(p, t float64) PVT {
	wc := s.WaterCut
	gammaO := s.OilSG()

	r := PVT{Pressure: p, Temperature: t}

	r.Rs = s.SolutionGOR(p, t)
	r.Bo = oilFVF(r.Rs, s.GasSG, gammaO, t)
	r.Bw = waterFVF(p, t)
	r.Z = s.ZFactor(p, t)

	pg := math.Max(p, MinGasPressure)
	tr := t + RankineOffset
	r.Bg = StandardBgConst * r.Z * tr / pg

	r.OilDensity = s.SurfaceOilDensity() / r.Bo
	r.WaterDensity = s.SurfaceWaterDensity() / r.Bw
	r.GasDensity = pg * AirMolarMass * s.GasSG / (r.Z * GasConstant * tr)
	r.LiquidDensity = wc*r.WaterDensity + (1-wc)*r.OilDensity

	r.DeadOilViscosity = deadOilViscosity(s.API, t)
	r.OilViscosity = liveOilViscosity(r.DeadOilViscosity, r.Rs)
	r.WaterViscosity = waterViscosity(t)
	r.GasViscosity = gasViscosity(r.GasDensity, s.GasSG, tr)
	r.LiquidViscosity = wc*r.WaterViscosity + (1-wc)*r.OilViscosity

	r.OilTension = math.Max(39-0.257*s.API, MinOilTension)
	r.LiquidTension = (1-wc)*r.OilTension + wc*WaterTension

	return r
}

// SolutionGOR returns Rs from the Standing correlation, capped at the sample GOR:
//
//	Rs = γg·[(p/18.2 + 1.4)·10^(0.0125·API − 0.00091·T)]^1.2048
func (s Sample) SolutionGOR(p, t float64) float64 {
	p = math.Max(p, 0)
	base := (p/18.2 + 1.4) * math.Pow(10, 0.0125*s.API-0.00091*t)
	rs := s.GasSG * math.Pow(base, 1.2048)
	if math.IsNaN(rs) || rs < 0 {
		return 0
	}
	return math.Min(rs, s.GOR)
}

// ZFactor returns the gas compressibility factor from the Papay closed form
// with Standing pseudo-critical properties, clamped to [0.7, 1.2].
func (s Sample) ZFactor(p, t float64) float64 {
	g := s.GasSG
	tpc := 168 + 325*g - 12.5*g*g
	ppc := 677 + 15*g - 37.5*g*g
	tpr := (t + RankineOffset) / tpc
	ppr := math.Max(p, 0) / ppc

	z := 1 - 3.52*ppr/math.Pow(10, 0.9813*tpr) + 0.274*ppr*ppr/math.Pow(10, 0.8157*tpr)
	if math.IsNaN(z) {
		return 1
	}
	return clamp(z, ZFactorMin, ZFactorMax)
}

// oilFVF is the Standing oil formation volume factor:
// Bo = 0.9759 + 0.00012·[Rs·(γg/γo)^0.5 + 1.25·T]^1.2
func oilFVF(rs, gammaG, gammaO, t float64) float64 {
	f := math.Max(rs*math.Sqrt(gammaG/gammaO)+1.25*t, 0)
	return 0.9759 + 0.00012*math.Pow(f, 1.2)
}

// waterFVF applies thermal expansion and compressibility corrections to
// fresh water.
func waterFVF(p, t float64) float64 {
	dt := t - 60
	bw := 1.0 + 1.2e-4*dt + 1.0e-6*dt*dt - 3.33e-6*math.Max(p, 0)
	return math.Max(bw, 0.9)
}

// deadOilViscosity is the Beggs-Robinson dead-oil correlation:
// x = 10^(3.0324 − 0.02023·API)·T^−1.163, μod = 10^x − 1
func deadOilViscosity(api, t float64) float64 {
	x := math.Pow(10, 3.0324-0.02023*api) * math.Pow(math.Max(t, 1), -1.163)
	return math.Pow(10, x) - 1
}

// liveOilViscosity corrects the dead-oil viscosity for dissolved gas.
func liveOilViscosity(muOD, rs float64) float64 {
	a := 10.715 * math.Pow(rs+100, -0.515)
	b := 5.44 * math.Pow(rs+150, -0.338)
	return a * math.Pow(math.Max(muOD, 0), b)
}

// waterViscosity is the Beggs-Brill fit for water viscosity (cp).
func waterViscosity(t float64) float64 {
	return math.Exp(1.003 - 1.479e-2*t + 1.982e-5*t*t)
}

// gasViscosity is the Lee-Gonzalez-Eakin correlation. tr is in °R.
func gasViscosity(rhoG, gammaG, tr float64) float64 {
	m := AirMolarMass * gammaG
	k := (9.4 + 0.02*m) * math.Pow(tr, 1.5) / (209 + 19*m + tr)
	x := 3.5 + 986/tr + 0.01*m
	y := 2.4 - 0.2*x
	return 1e-4 * k * math.Exp(x*math.Pow(rhoG/WaterDensity, y))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
