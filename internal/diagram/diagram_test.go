package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gonodal/internal/curve"
	"github.com/alexiusacademia/gonodal/internal/ipr"
	"github.com/alexiusacademia/gonodal/internal/nodal"
	"github.com/alexiusacademia/gonodal/internal/wellbore"
)

func testReport() *nodal.Report {
	rates := curve.Linspace(0, 1000, 11)
	iprCurve := make(curve.Curve, len(rates))
	vlpCurve := make(curve.Curve, len(rates))
	for i, q := range rates {
		iprCurve[i] = curve.Point{Rate: q, Pressure: 3000 - 2*q}
		vlpCurve[i] = curve.Point{Rate: q, Pressure: 500 + 0.5*q}
	}
	return &nodal.Report{
		Completion:     "Well-1",
		Model:          ipr.KindVogel,
		IPR:            iprCurve,
		VLP:            vlpCurve,
		OperatingPoint: nodal.OperatingPoint{Rate: 1000, Pressure: 1000},
	}
}

func testRun() *nodal.SensitivityRun {
	r := testReport()
	return &nodal.SensitivityRun{
		Parameter: nodal.TubingID,
		Values:    []float64{2.0, 2.5},
		IPR:       r.IPR,
		Results: []nodal.SweepResult{
			{Value: 2.0, VLP: r.VLP, OperatingPoint: nodal.OperatingPoint{Rate: 900, Pressure: 1200}},
			{Value: 2.5, VLP: r.VLP, OperatingPoint: r.OperatingPoint},
		},
	}
}

func TestDrawSummaryBoxIsRectangular(t *testing.T) {
	box := DrawSummaryBox("OPERATING POINT", []string{"Rate: 412.3 STB/D", "Pressure: 1523.9 psi", "Casing: 8.000 in ID ⌀"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)

	want := utf8.RuneCountInString(lines[0])
	for _, l := range lines {
		assert.Equal(t, want, utf8.RuneCountInString(l), l)
	}
	assert.Contains(t, box, "OPERATING POINT")
}

func TestDrawCurves(t *testing.T) {
	r := testReport()
	out, err := DrawCurves(r.IPR, r.VLP, r.OperatingPoint)
	require.NoError(t, err)
	assert.Contains(t, out, "operating point 1000.0 STB/D @ 1000.0 psi")

	_, err = DrawCurves(nil, r.VLP, r.OperatingPoint)
	assert.ErrorIs(t, err, curve.ErrEmpty)
}

func TestDrawIPR(t *testing.T) {
	r := testReport()
	out, err := DrawIPR(r.IPR, 1500)
	require.NoError(t, err)
	assert.Contains(t, out, "AOF 1500.0 STB/D")

	_, err = DrawIPR(r.IPR[:1], 1500)
	assert.ErrorIs(t, err, curve.ErrEmpty)

	flat := curve.Curve{{Rate: 0, Pressure: 3000}, {Rate: 0, Pressure: 100}}
	_, err = DrawIPR(flat, 0)
	assert.ErrorIs(t, err, curve.ErrNotIncreasing)
}

func TestDrawSweep(t *testing.T) {
	out := DrawSweep(testRun())
	assert.Contains(t, out, "tubing-id")
	assert.Empty(t, DrawSweep(&nodal.SensitivityRun{}))
}

func TestDrawWellSchematic(t *testing.T) {
	tubing := []wellbore.Tubular{{Name: "2-7/8 EUE", ToMD: 5000, ID: 2.441}}
	g, _, err := wellbore.Resolve(tubing, nil, "", 5500)
	require.NoError(t, err)

	out := DrawWellSchematic(g)
	assert.Contains(t, out, "shoe 5000 ft (2-7/8 EUE, ID 2.441 in)")
	assert.Contains(t, out, "perforation 5500 ft")
}

func TestExportCharts(t *testing.T) {
	dir := t.TempDir()

	nodalPath := filepath.Join(dir, "charts", "nodal.png")
	require.NoError(t, ExportNodalChart(testReport(), nodalPath, Size{}))
	info, err := os.Stat(nodalPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	sweepPath := filepath.Join(dir, "sweep.svg")
	require.NoError(t, ExportSensitivityChart(testRun(), sweepPath, Size{Width: 400, Height: 300}))
	_, err = os.Stat(sweepPath)
	require.NoError(t, err)

	iprPath := filepath.Join(dir, "ipr.pdf")
	require.NoError(t, ExportIPRChart(testReport().IPR, "IPR: Well-1", iprPath, Size{}))
	_, err = os.Stat(iprPath)
	require.NoError(t, err)

	noExt := filepath.Join(dir, "chart")
	require.NoError(t, ExportNodalChart(testReport(), noExt, Size{}))
	_, err = os.Stat(noExt + ".png")
	require.NoError(t, err)
}
