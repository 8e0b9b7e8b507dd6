package fluid

import (
	"errors"
	"fmt"
)

// Oilfield constants
const (
	WaterDensity    = 62.4    // Fresh water density at standard conditions (lb/ft³)
	AirMolarMass    = 28.97   // Molecular weight of air (lb/lb-mol)
	GasConstant     = 10.73   // Universal gas constant (psia·ft³/(lb-mol·°R))
	RankineOffset   = 460.0   // °F to °R
	StandardBgConst = 0.02827 // Bg = 0.02827·Z·T/p (ft³/scf)
)

// ErrInvalidSample is returned when a fluid sample is outside its valid range.
var ErrInvalidSample = errors.New("invalid fluid sample")

// Sample describes a produced fluid as entered in the fluid catalog
type Sample struct {
	Name string `json:"name" yaml:"name"`

	WaterCut float64 `json:"water_cut" yaml:"water_cut"`                           // fraction, 0 to 1
	GOR      float64 `json:"gor" yaml:"gor"`                                       // scf/STB
	GasSG    float64 `json:"gas_specific_gravity" yaml:"gas_specific_gravity"`     // air = 1
	WaterSG  float64 `json:"water_specific_gravity" yaml:"water_specific_gravity"` // fresh water = 1
	API      float64 `json:"api" yaml:"api"`                                       // °API

	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate checks the sample ranges
func (s Sample) Validate() error {
	switch {
	case s.WaterCut < 0 || s.WaterCut > 1:
		return fmt.Errorf("%w: water cut %.3f outside [0, 1]", ErrInvalidSample, s.WaterCut)
	case s.GOR < 0:
		return fmt.Errorf("%w: GOR %.2f must be >= 0", ErrInvalidSample, s.GOR)
	case s.GasSG <= 0:
		return fmt.Errorf("%w: gas specific gravity %.3f must be > 0", ErrInvalidSample, s.GasSG)
	case s.WaterSG <= 0:
		return fmt.Errorf("%w: water specific gravity %.3f must be > 0", ErrInvalidSample, s.WaterSG)
	case s.API < 0:
		return fmt.Errorf("%w: API %.2f must be >= 0", ErrInvalidSample, s.API)
	}
	return nil
}

// OilSG returns the oil specific gravity, γo = 141.5/(API + 131.5)
func (s Sample) OilSG() float64 {
	return 141.5 / (s.API + 131.5)
}

// SurfaceOilDensity returns the stock-tank oil density (lb/ft³)
func (s Sample) SurfaceOilDensity() float64 {
	return WaterDensity * s.OilSG()
}

// SurfaceWaterDensity returns the produced water density at surface (lb/ft³)
func (s Sample) SurfaceWaterDensity() float64 {
	return WaterDensity * s.WaterSG
}

// SurfaceLiquidDensity returns the water-cut weighted liquid density at
// surface conditions (lb/ft³).
func (s Sample) SurfaceLiquidDensity() float64 {
	return s.WaterCut*s.SurfaceWaterDensity() + (1-s.WaterCut)*s.SurfaceOilDensity()
}
