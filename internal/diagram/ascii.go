package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gonodal/internal/curve"
	"github.com/alexiusacademia/gonodal/internal/nodal"
	"github.com/alexiusacademia/gonodal/internal/wellbore"
)

// Terminal chart size in characters
const (
	ChartWidth  = 60
	ChartHeight = 16
)

// resample interpolates c onto n evenly spaced rates over [lo, hi]
func resample(c curve.Curve, lo, hi float64, n int) ([]float64, error) {
	return curve.Interpolate(c.Rates(), c.Pressures(), curve.Linspace(lo, hi, n))
}

// DrawCurves plots the IPR (first series) and VLP (second series) curves on
// a shared rate axis, with the operating rate in the caption.
func DrawCurves(iprCurve, vlpCurve curve.Curve, op nodal.OperatingPoint) (string, error) {
	if len(iprCurve) == 0 || len(vlpCurve) == 0 {
		return "", curve.ErrEmpty
	}
	lo := math.Min(iprCurve[0].Rate, vlpCurve[0].Rate)
	hi := math.Max(iprCurve[len(iprCurve)-1].Rate, vlpCurve[len(vlpCurve)-1].Rate)

	ipr, err := resample(iprCurve, lo, hi, ChartWidth)
	if err != nil {
		return "", err
	}
	vlp, err := resample(vlpCurve, lo, hi, ChartWidth)
	if err != nil {
		return "", err
	}

	caption := fmt.Sprintf("IPR (blue) / VLP (red), rate %.0f to %.0f STB/D, operating point %.1f STB/D @ %.1f psi",
		lo, hi, op.Rate, op.Pressure)
	graph := asciigraph.PlotMany([][]float64{ipr, vlp},
		asciigraph.Height(ChartHeight),
		asciigraph.Width(ChartWidth),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(caption),
	)
	return graph + "\n", nil
}

// DrawIPR plots pwf against rate for a single inflow curve
func DrawIPR(c curve.Curve, aof float64) (string, error) {
	if len(c) < 2 {
		return "", curve.ErrEmpty
	}
	lo, hi := c[0].Rate, c[len(c)-1].Rate
	if hi <= lo {
		return "", curve.ErrNotIncreasing
	}
	pwf, err := resample(c, lo, hi, ChartWidth)
	if err != nil {
		return "", err
	}
	caption := fmt.Sprintf("IPR pwf (psi) vs rate %.0f to %.0f STB/D, AOF %.1f STB/D", lo, hi, aof)
	return asciigraph.Plot(pwf,
		asciigraph.Height(ChartHeight),
		asciigraph.Width(ChartWidth),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue),
		asciigraph.Caption(caption),
	) + "\n", nil
}

// DrawSweep plots the operating rate against the swept value
func DrawSweep(run *nodal.SensitivityRun) string {
	rates := make([]float64, len(run.Results))
	for i, r := range run.Results {
		rates[i] = r.OperatingPoint.Rate
	}
	if len(rates) == 0 {
		return ""
	}
	if len(rates) == 1 {
		rates = append(rates, rates[0])
	}

	caption := fmt.Sprintf("Operating rate (STB/D) vs %s, %.4f to %.4f in",
		run.Parameter, run.Values[0], run.Values[len(run.Values)-1])
	return asciigraph.Plot(rates,
		asciigraph.Height(ChartHeight/2),
		asciigraph.Width(ChartWidth),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	) + "\n"
}

// DrawWellSchematic draws the flow path: tubing from surface to the shoe,
// casing from the shoe to the perforation.
func DrawWellSchematic(g wellbore.Geometry) string {
	var sb strings.Builder

	rows := 16
	shoeRow := 1
	if g.PerforationDepth > 0 {
		shoeRow = int(math.Round(g.ShoeDepth / g.PerforationDepth * float64(rows-2)))
	}
	shoeRow = min(max(shoeRow, 1), rows-2)

	sb.WriteString("\n")
	sb.WriteString("  WELL SCHEMATIC\n")
	sb.WriteString("  ──────────────\n")
	sb.WriteString("  ┌──┬─┬──┐  ◄─ wellhead\n")

	for i := 1; i < rows; i++ {
		switch {
		case i < shoeRow:
			sb.WriteString("  │  │ │  │\n")
		case i == shoeRow:
			sb.WriteString(fmt.Sprintf("  │  └─┘  │  ◄─ shoe %.0f ft (%s, ID %.3f in)\n",
				g.ShoeDepth, g.Tubing.Name, g.Tubing.Diameter*wellbore.InchesPerFoot))
		case i == rows-1:
			sb.WriteString(fmt.Sprintf("  │≡≡≡≡≡≡≡│  ◄─ perforation %.0f ft (%s, ID %.3f in)\n",
				g.PerforationDepth, g.Casing.Name, g.Casing.Diameter*wellbore.InchesPerFoot))
		default:
			sb.WriteString("  │       │\n")
		}
	}
	sb.WriteString("  └───────┘\n")
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
