package fluid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSample() Sample {
	return Sample{Name: "base", WaterCut: 0.2, GOR: 500, GasSG: 0.7, WaterSG: 1.0, API: 35}
}

func TestSampleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Sample)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *Sample) {}},
		{name: "water cut above one", mutate: func(s *Sample) { s.WaterCut = 1.2 }, wantErr: true},
		{name: "negative GOR", mutate: func(s *Sample) { s.GOR = -1 }, wantErr: true},
		{name: "zero gas gravity", mutate: func(s *Sample) { s.GasSG = 0 }, wantErr: true},
		{name: "zero water gravity", mutate: func(s *Sample) { s.WaterSG = 0 }, wantErr: true},
		{name: "negative API", mutate: func(s *Sample) { s.API = -5 }, wantErr: true},
		{name: "dead oil", mutate: func(s *Sample) { s.GOR = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSample()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSample))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSurfaceDensities(t *testing.T) {
	s := testSample()

	assert.InDelta(t, 0.84985, s.OilSG(), 1e-5)
	assert.InDelta(t, 53.0306, s.SurfaceOilDensity(), 1e-3)
	assert.InDelta(t, 62.4, s.SurfaceWaterDensity(), 1e-9)
	assert.InDelta(t, 54.9045, s.SurfaceLiquidDensity(), 1e-3)
}

func TestPropertiesRanges(t *testing.T) {
	s := testSample()

	for _, p := range []float64{0, 100, 500, 1500, 3000, 6000} {
		props := s.Properties(p, 150)

		assert.LessOrEqual(t, props.Rs, s.GOR, "p=%v", p)
		assert.GreaterOrEqual(t, props.Rs, 0.0, "p=%v", p)
		assert.GreaterOrEqual(t, props.Z, ZFactorMin, "p=%v", p)
		assert.LessOrEqual(t, props.Z, ZFactorMax, "p=%v", p)
		assert.Greater(t, props.Bo, 1.0, "p=%v", p)
		assert.Greater(t, props.Bg, 0.0, "p=%v", p)
		assert.Greater(t, props.GasDensity, 0.0, "p=%v", p)
		assert.Less(t, props.GasDensity, props.LiquidDensity, "p=%v", p)
		assert.Greater(t, props.OilViscosity, 0.0, "p=%v", p)
		assert.Greater(t, props.GasViscosity, 0.0, "p=%v", p)
	}
}

func TestPropertiesMixingRules(t *testing.T) {
	s := testSample()
	props := s.Properties(1200, 180)

	wc := s.WaterCut
	assert.InDelta(t, s.SurfaceOilDensity()/props.Bo, props.OilDensity, 1e-9)
	assert.InDelta(t, s.SurfaceWaterDensity()/props.Bw, props.WaterDensity, 1e-9)
	assert.InDelta(t, wc*props.WaterDensity+(1-wc)*props.OilDensity, props.LiquidDensity, 1e-9)
	assert.InDelta(t, wc*props.WaterViscosity+(1-wc)*props.OilViscosity, props.LiquidViscosity, 1e-9)

	// σo = 39 − 0.257·35 = 30.005, σl = 0.8·30.005 + 0.2·72
	assert.InDelta(t, 30.005, props.OilTension, 1e-9)
	assert.InDelta(t, 38.404, props.LiquidTension, 1e-9)
}

func TestSolutionGORIsCapped(t *testing.T) {
	s := testSample()

	low := s.SolutionGOR(200, 180)
	high := s.SolutionGOR(10000, 180)

	assert.Less(t, low, s.GOR)
	assert.Equal(t, s.GOR, high)
	assert.Less(t, s.SolutionGOR(100, 180), s.SolutionGOR(800, 180))
}

func TestDeadOilViscosity(t *testing.T) {
	mu := deadOilViscosity(35, 180)
	assert.InDelta(t, 2.18, mu, 0.05)

	// Lighter oil is less viscous
	assert.Less(t, deadOilViscosity(45, 180), mu)
	// Dissolved gas thins the oil
	assert.Less(t, liveOilViscosity(mu, 300), mu)
}

func TestPropertiesArePure(t *testing.T) {
	s := testSample()
	assert.Equal(t, s.Properties(900, 140), s.Properties(900, 140))
}

func TestBubblePoint(t *testing.T) {
	tests := []struct {
		name    string
		gor     float64
		pws     float64
		wantMin float64
		wantMax float64
	}{
		{name: "standing value", gor: 500, pws: 3000, wantMin: 1350, wantMax: 1550},
		{name: "clamped to 0.95 Pws", gor: 5000, pws: 3000, wantMin: 2849.999, wantMax: 2850.001},
		{name: "clamped to 100 psi", gor: 0, pws: 3000, wantMin: 100, wantMax: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSample()
			s.GOR = tt.gor
			pb, ok := s.BubblePoint(180, tt.pws)
			assert.True(t, ok)
			assert.GreaterOrEqual(t, pb, tt.wantMin)
			assert.LessOrEqual(t, pb, tt.wantMax)
		})
	}
}

func TestBubblePointFallback(t *testing.T) {
	s := testSample()
	s.GasSG = -0.7 // negative base under a fractional power

	pb, ok := s.BubblePoint(180, 3000)
	assert.False(t, ok)
	assert.InDelta(t, 2400.0, pb, 1e-9)
	assert.InDelta(t, 2400.0, DefaultBubblePoint(3000), 1e-9)
}

func TestBubblePointLowReservoirPressure(t *testing.T) {
	tests := []struct {
		name string
		pws  float64
	}{
		{name: "below 100 psi", pws: 90},
		{name: "0.95 Pws just under 100", pws: 105},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb, ok := testSample().BubblePoint(180, tt.pws)
			assert.False(t, ok)
			assert.InDelta(t, 0.8*tt.pws, pb, 1e-9)
			assert.LessOrEqual(t, pb, MaxBubblePointRatio*tt.pws)
		})
	}

	pb, ok := testSample().BubblePoint(180, 106)
	assert.True(t, ok)
	assert.LessOrEqual(t, pb, MaxBubblePointRatio*106)
}
