package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gonodal/internal/curve"
	"github.com/alexiusacademia/gonodal/internal/nodal"
)

// Size is an exported chart size in points. The zero value uses 8x6 in.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) lengths() (vg.Length, vg.Length) {
	if s.Width <= 0 || s.Height <= 0 {
		return 8 * vg.Inch, 6 * vg.Inch
	}
	return vg.Points(s.Width), vg.Points(s.Height)
}

var (
	iprColor = color.RGBA{R: 0, G: 90, B: 200, A: 255}
	vlpColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	opColor  = color.RGBA{R: 0, G: 130, B: 0, A: 255}
)

func xys(c curve.Curve) plotter.XYs {
	pts := make(plotter.XYs, len(c))
	for i, p := range c {
		pts[i] = plotter.XY{X: p.Rate, Y: p.Pressure}
	}
	return pts
}

func addCurve(p *plot.Plot, c curve.Curve, col color.Color, width float64, legend string) error {
	line, err := plotter.NewLine(xys(c))
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(width)
	line.LineStyle.Color = col
	p.Add(line)
	if legend != "" {
		p.Legend.Add(legend, line)
	}
	return nil
}

func addOperatingPoints(p *plot.Plot, ops []nodal.OperatingPoint, labels []string) error {
	pts := make(plotter.XYs, len(ops))
	for i, op := range ops {
		pts[i] = plotter.XY{X: op.Rate, Y: op.Pressure}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = opColor
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	if len(labels) == 0 {
		return nil
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

// ExportNodalChart exports the IPR and VLP curves with the operating point
func ExportNodalChart(r *nodal.Report, filename string, size Size) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Nodal Analysis: %s", r.Completion)
	p.X.Label.Text = "Liquid rate (STB/D)"
	p.Y.Label.Text = "Bottomhole pressure (psi)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	if err := addCurve(p, r.IPR, iprColor, 2, fmt.Sprintf("IPR (%s)", r.Model)); err != nil {
		return err
	}
	if err := addCurve(p, r.VLP, vlpColor, 2, "VLP"); err != nil {
		return err
	}
	op := r.OperatingPoint
	label := fmt.Sprintf("  %.0f STB/D @ %.0f psi", op.Rate, op.Pressure)
	if err := addOperatingPoints(p, []nodal.OperatingPoint{op}, []string{label}); err != nil {
		return err
	}

	return save(p, size, filename)
}

// ExportIPRChart exports a single inflow curve
func ExportIPRChart(c curve.Curve, title string, filename string, size Size) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Liquid rate (STB/D)"
	p.Y.Label.Text = "Bottomhole pressure (psi)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	if err := addCurve(p, c, iprColor, 2, ""); err != nil {
		return err
	}
	return save(p, size, filename)
}

// ExportSensitivityChart exports the shared IPR curve, one VLP curve per
// swept value and their operating points.
func ExportSensitivityChart(run *nodal.SensitivityRun, filename string, size Size) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sensitivity: %s", run.Parameter)
	p.X.Label.Text = "Liquid rate (STB/D)"
	p.Y.Label.Text = "Bottomhole pressure (psi)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	if err := addCurve(p, run.IPR, iprColor, 2.5, "IPR"); err != nil {
		return err
	}

	ops := make([]nodal.OperatingPoint, len(run.Results))
	for i, r := range run.Results {
		col := sweepColor(i)
		if err := addCurve(p, r.VLP, col, 1.5, fmt.Sprintf("%.4g in", r.Value)); err != nil {
			return err
		}
		ops[i] = r.OperatingPoint
	}
	if len(ops) > 0 {
		if err := addOperatingPoints(p, ops, nil); err != nil {
			return err
		}
	}

	return save(p, size, filename)
}

// sweepColor cycles a fixed palette for swept VLP curves
func sweepColor(i int) color.Color {
	palette := []color.Color{
		color.RGBA{R: 200, G: 30, B: 30, A: 255},
		color.RGBA{R: 230, G: 120, B: 0, A: 255},
		color.RGBA{R: 150, G: 60, B: 170, A: 255},
		color.RGBA{R: 0, G: 150, B: 150, A: 255},
		color.RGBA{R: 120, G: 80, B: 40, A: 255},
		color.RGBA{R: 90, G: 90, B: 90, A: 255},
	}
	return palette[i%len(palette)]
}

// save writes p to filename. PNG, SVG and PDF are chosen by extension;
// anything else gets a .png suffix.
func save(p *plot.Plot, size Size, filename string) error {
	width, height := size.lengths()

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
