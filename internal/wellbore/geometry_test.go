package wellbore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gonodal/internal/notice"
)

var testTubing = []Tubular{
	{Name: "2-7/8 EUE", SectionType: SectionTubing, ToMD: 5000, ID: 2.441, OD: 2.875, WallThickness: 0.217, Roughness: 0.0006},
	{Name: "3-1/2 EUE", SectionType: SectionTubing, ToMD: 5200, ID: 2.992, OD: 3.5, WallThickness: 0.254, Roughness: 0.0006},
}

func TestTubularValidate(t *testing.T) {
	tests := []struct {
		name    string
		row     Tubular
		wantErr bool
	}{
		{name: "valid", row: testTubing[0]},
		{name: "missing name", row: Tubular{ToMD: 100, ID: 2}, wantErr: true},
		{name: "zero ID", row: Tubular{Name: "x", ToMD: 100}, wantErr: true},
		{name: "OD below ID", row: Tubular{Name: "x", ToMD: 100, ID: 3, OD: 2}, wantErr: true},
		{name: "negative roughness", row: Tubular{Name: "x", ToMD: 100, ID: 2, Roughness: -1}, wantErr: true},
		{name: "inverted depths", row: Tubular{Name: "x", FromMD: 500, ToMD: 100, ID: 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.row.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidTubular))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSegmentUnits(t *testing.T) {
	seg := testTubing[0].Segment(0, 5000)

	assert.InDelta(t, 2.441/12, seg.Diameter, 1e-12)
	assert.InDelta(t, 0.0006/12, seg.Roughness, 1e-12)
	assert.Equal(t, 5000.0, seg.Length())

	wider := seg.WithDiameterInches(3.5)
	assert.InDelta(t, 3.5/12, wider.Diameter, 1e-12)
	assert.InDelta(t, 2.441/12, seg.Diameter, 1e-12, "original must be unchanged")

	rough := seg.WithRoughnessInches(0.006)
	assert.InDelta(t, 0.0005, rough.Roughness, 1e-12)
}

func TestResolveSpanningCasing(t *testing.T) {
	casing := []Tubular{
		{Name: "Surface", SectionType: SectionCasing, FromMD: 0, ToMD: 1500, ID: 12.415, OD: 13.375},
		{Name: "Production", SectionType: SectionCasing, FromMD: 0, ToMD: 6000, ID: 6.276, OD: 7, Roughness: 0.0018},
	}

	g, warnings, err := Resolve(testTubing, casing, "", 5500)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 5000.0, g.ShoeDepth)
	assert.Equal(t, "2-7/8 EUE", g.Tubing.Name)
	assert.Equal(t, "Production", g.Casing.Name)
	assert.Equal(t, 5000.0, g.Tubing.Length())
	assert.Equal(t, 500.0, g.Casing.Length())
}

func TestResolveByName(t *testing.T) {
	g, _, err := Resolve(testTubing, nil, "3-1/2 eue", 5500)
	require.NoError(t, err)
	assert.Equal(t, 5200.0, g.ShoeDepth)
	assert.InDelta(t, 2.992/12, g.Tubing.Diameter, 1e-12)

	_, _, err = Resolve(testTubing, nil, "4-1/2", 5500)
	assert.True(t, errors.Is(err, ErrNoTubing))
}

func TestResolveRepositionsShoe(t *testing.T) {
	g, warnings, err := Resolve(testTubing, nil, "", 4800)
	require.NoError(t, err)

	assert.True(t, warnings.Has(notice.InvalidGeometry))
	assert.Equal(t, 4600.0, g.ShoeDepth)
	assert.Equal(t, 4600.0, g.Tubing.Length())
	assert.Equal(t, 200.0, g.Casing.Length())
}

func TestResolveCasingFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		casing     []Tubular
		wantCasing string
		wantWarn   bool
	}{
		{
			name:       "liner covers perforation only",
			casing:     []Tubular{{Name: "Liner", SectionType: SectionLiner, FromMD: 5300, ToMD: 6000, ID: 4.892, OD: 5.5}},
			wantCasing: "Liner",
			wantWarn:   true,
		},
		{
			name:       "open hole is ignored",
			casing:     []Tubular{{Name: "OH", SectionType: SectionOpenHole, FromMD: 0, ToMD: 6000, ID: 8.5}},
			wantCasing: DefaultCasing.Name,
			wantWarn:   true,
		},
		{
			name:       "no casing",
			wantCasing: DefaultCasing.Name,
			wantWarn:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, warnings, err := Resolve(testTubing, tt.casing, "", 5500)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCasing, g.Casing.Name)
			assert.Equal(t, tt.wantWarn, warnings.Has(notice.MissingCasingCoverage))
		})
	}
}

func TestDefaultCasingDimensions(t *testing.T) {
	g, _, err := Resolve(testTubing, nil, "", 5500)
	require.NoError(t, err)
	assert.InDelta(t, 8.0/12, g.Casing.Diameter, 1e-12)
	assert.Equal(t, 8.625, DefaultCasing.OD)
}

func TestResolvePreconditions(t *testing.T) {
	_, _, err := Resolve(nil, nil, "", 5500)
	assert.True(t, errors.Is(err, ErrNoTubing))

	_, _, err = Resolve(testTubing, nil, "", 0)
	assert.True(t, errors.Is(err, ErrInvalidDepth))
}

func TestShoeTemperature(t *testing.T) {
	g := Geometry{ShoeDepth: 5000, PerforationDepth: 5500}
	assert.InDelta(t, 60+(180-60)*5000.0/5500, g.ShoeTemperature(60, 180), 1e-12)
}

func TestWithTubingKeepsDepths(t *testing.T) {
	g, _, err := Resolve(testTubing, nil, "", 5500)
	require.NoError(t, err)

	seg := PipeSegment{Name: "swap", Diameter: 0.3, TopDepth: 10, BottomDepth: 20}
	g2 := g.WithTubing(seg)
	assert.Equal(t, "swap", g2.Tubing.Name)
	assert.Equal(t, g.Tubing.BottomDepth, g2.Tubing.BottomDepth)
	assert.Equal(t, "2-7/8 EUE", g.Tubing.Name)
}
